package browser

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"

	"github.com/matt-dz/tastetribe/internal/filter"
	"github.com/matt-dz/tastetribe/internal/recipe"
	"github.com/matt-dz/tastetribe/internal/repository"
	"github.com/matt-dz/tastetribe/internal/repository/repomock"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var authErr = &repository.Error{Kind: repository.KindAuth, Status: 401}

func catalog() []recipe.Recipe {
	return []recipe.Recipe{
		{ID: "1", Title: "Pad Thai", CountryOfOrigin: "Thailand", DietType: "Vegan", Rating: 4.2, Servings: 2, PrepTime: "30 min"},
		{ID: "2", Title: "Ramen", CountryOfOrigin: "Japan", DietType: "Keto", Rating: 4.8, Servings: 4, PrepTime: "2 hours"},
		{ID: "3", Title: "Green Curry", CountryOfOrigin: "Thailand", DietType: "Vegan", Rating: 3.5, Servings: 3, PrepTime: "45 min"},
	}
}

func desserts(n int) []recipe.Recipe {
	out := make([]recipe.Recipe, n)
	for i := range out {
		out[i] = recipe.Recipe{ID: recipe.ID(string(rune('a' + i))), DietType: FeaturedDietType}
	}
	return out
}

func testConfig() Config {
	return Config{MaxConcurrency: 4, CarouselPeriod: time.Hour}
}

func TestExplore(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repomock.NewMockRepository(ctrl)
	ctx := context.Background()

	repo.EXPECT().ListRecipes(gomock.Any(), repository.ListOptions{}).Return(catalog(), nil)
	repo.EXPECT().BookmarkStatus(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, id recipe.ID) (bool, error) {
			if id == "3" {
				return false, &repository.Error{Kind: repository.KindNetwork}
			}
			return id == "1", nil
		}).Times(3)
	repo.EXPECT().SetBookmark(gomock.Any(), recipe.ID("3")).Return(nil)

	e := NewExplore(repo, testConfig())
	defer e.Close()

	_, err := e.ToggleBookmark(ctx, "3")
	require.ErrorIs(t, err, ErrNotLoaded)

	require.NoError(t, e.Load(ctx))
	assert.Len(t, e.Visible(), 3)
	assert.Equal(t, []string{filter.All, "Thailand", "Japan"}, e.Countries())

	view := e.View()
	assert.Equal(t, 3, view.Total)
	assert.Equal(t, map[recipe.ID]bool{"1": true, "2": false}, view.Bookmarks)
	assert.Equal(t, []recipe.ID{"3"}, view.Unknown)

	require.NoError(t, e.SetCriteria(filter.Criteria{DietType: "Vegan", Country: "Thailand", MinRating: 4}))
	assert.Equal(t, []recipe.ID{"1"}, recipe.IDs(e.Visible()))

	require.Error(t, e.SetCriteria(filter.Criteria{MinRating: 9}))
	assert.Equal(t, 4.0, e.Criteria().MinRating)

	v, err := e.ToggleBookmark(ctx, "3")
	require.NoError(t, err)
	assert.True(t, v)
	assert.Empty(t, e.View().Unknown)
}

func TestExplore_AnonymousListIsEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repomock.NewMockRepository(ctrl)
	repo.EXPECT().ListRecipes(gomock.Any(), gomock.Any()).Return(nil, authErr)

	e := NewExplore(repo, testConfig())
	defer e.Close()

	require.NoError(t, e.Load(context.Background()))
	assert.Empty(t, e.Visible())
	assert.Equal(t, []string{filter.All}, e.Countries())
}

func TestExplore_Closed(t *testing.T) {
	ctrl := gomock.NewController(t)
	e := NewExplore(repomock.NewMockRepository(ctrl), testConfig())
	e.Close()

	assert.ErrorIs(t, e.Load(context.Background()), ErrClosed)
	_, err := e.ToggleBookmark(context.Background(), "1")
	assert.ErrorIs(t, err, ErrClosed)
}

func TestExplore_ToggleClosedMidFlight(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repomock.NewMockRepository(ctrl)
	ctx := context.Background()

	repo.EXPECT().ListRecipes(gomock.Any(), gomock.Any()).Return(catalog(), nil)
	repo.EXPECT().BookmarkStatus(gomock.Any(), gomock.Any()).Return(false, nil).Times(3)

	e := NewExplore(repo, testConfig())
	require.NoError(t, e.Load(ctx))

	repo.EXPECT().SetBookmark(gomock.Any(), recipe.ID("1")).
		DoAndReturn(func(context.Context, recipe.ID) error {
			e.Close()
			return nil
		})

	_, err := e.ToggleBookmark(ctx, "1")
	assert.ErrorIs(t, err, ErrClosed)
}

func TestExplore_ViewWith(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repomock.NewMockRepository(ctrl)
	ctx := context.Background()

	repo.EXPECT().ListRecipes(gomock.Any(), gomock.Any()).Return(catalog(), nil)
	repo.EXPECT().BookmarkStatus(gomock.Any(), gomock.Any()).Return(false, nil).Times(3)

	e := NewExplore(repo, testConfig())
	defer e.Close()
	require.NoError(t, e.Load(ctx))

	keto := filter.Neutral()
	keto.DietType = "Keto"
	vegan := filter.Neutral()
	vegan.DietType = "Vegan"

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			v, err := e.ViewWith(keto)
			assert.NoError(t, err)
			assert.Equal(t, []recipe.ID{"2"}, recipe.IDs(v.Recipes))
		}()
		go func() {
			defer wg.Done()
			v, err := e.ViewWith(vegan)
			assert.NoError(t, err)
			assert.Equal(t, []recipe.ID{"1", "3"}, recipe.IDs(v.Recipes))
		}()
	}
	wg.Wait()

	assert.Equal(t, filter.Neutral(), e.Criteria())

	bad := filter.Neutral()
	bad.MinRating = 9
	_, err := e.ViewWith(bad)
	assert.Error(t, err)
}

func TestFeatured(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repomock.NewMockRepository(ctrl)
	repo.EXPECT().ListRecipes(gomock.Any(), repository.ListOptions{DietType: FeaturedDietType}).Return(desserts(5), nil)

	f := NewFeatured(repo, testConfig())
	defer f.Close()

	require.NoError(t, f.Load(context.Background()))

	page := f.Page()
	assert.Equal(t, 3, page.PageSize)
	assert.Equal(t, 2, page.PageCount)
	assert.Equal(t, []recipe.ID{"a", "b", "c"}, recipe.IDs(page.Recipes))

	assert.True(t, f.JumpTo(1))
	assert.Equal(t, []recipe.ID{"d", "e"}, recipe.IDs(f.Page().Recipes))
	assert.False(t, f.JumpTo(2))

	st := f.SetViewportWidth(700)
	assert.Equal(t, 2, st.PageSize)
	assert.Equal(t, 3, st.PageCount)
	assert.Equal(t, 1, st.Index)

	st = f.SetViewportWidth(2000)
	assert.Equal(t, 1, st.Index)

	st = f.SetViewportWidth(320)
	assert.Equal(t, 1, st.PageSize)
	assert.Equal(t, []recipe.ID{"b"}, recipe.IDs(f.Page().Recipes))
}

func TestFeatured_AutoAdvance(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repomock.NewMockRepository(ctrl)
	repo.EXPECT().ListRecipes(gomock.Any(), gomock.Any()).Return(desserts(4), nil)

	cfg := testConfig()
	cfg.CarouselPeriod = 5 * time.Millisecond
	f := NewFeatured(repo, cfg)

	require.NoError(t, f.Load(context.Background()))
	f.SetViewportWidth(320)
	f.Start(context.Background())

	require.Eventually(t, func() bool { return f.Page().Index > 0 }, time.Second, time.Millisecond)
	f.Close()

	assert.ErrorIs(t, f.Load(context.Background()), ErrClosed)
}

func TestFeatured_OnPageChange(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repomock.NewMockRepository(ctrl)
	repo.EXPECT().ListRecipes(gomock.Any(), gomock.Any()).Return(desserts(4), nil)

	f := NewFeatured(repo, testConfig())
	defer f.Close()

	var pages []FeaturedPage
	f.OnPageChange(func(p FeaturedPage) { pages = append(pages, p) })

	require.NoError(t, f.Load(context.Background()))
	f.SetViewportWidth(320)
	require.True(t, f.JumpTo(2))

	require.NotEmpty(t, pages)
	last := pages[len(pages)-1]
	assert.Equal(t, 2, last.Index)
	assert.Equal(t, []recipe.ID{"c"}, recipe.IDs(last.Recipes))
}

func TestDetail(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repomock.NewMockRepository(ctrl)
	ctx := context.Background()

	soup := recipe.Recipe{ID: "7", Title: "Soup", Rating: 3, Comments: []recipe.Comment{{ID: "1", Content: "nice"}}}
	repo.EXPECT().GetRecipe(gomock.Any(), recipe.ID("7")).Return(soup, nil)
	repo.EXPECT().BookmarkStatus(gomock.Any(), recipe.ID("7")).Return(true, nil)
	repo.EXPECT().RateRecipe(gomock.Any(), recipe.ID("7"), 4.5).Return(recipe.Recipe{ID: "7", Title: "Soup", Rating: 4.1}, nil)
	repo.EXPECT().AddComment(gomock.Any(), recipe.ID("7"), "so good").Return(recipe.Comment{ID: "2", Content: "so good"}, nil)
	repo.EXPECT().ClearBookmark(gomock.Any(), recipe.ID("7")).Return(nil)

	d := NewDetail(repo, testConfig())
	defer d.Close()

	assert.ErrorIs(t, d.Rate(ctx, 3), ErrNotLoaded)

	require.NoError(t, d.Load(ctx, "7"))
	v, known := d.Bookmarked()
	assert.True(t, known)
	assert.True(t, v)

	assert.ErrorIs(t, d.Rate(ctx, 5.5), ErrInvalidRating)
	assert.ErrorIs(t, d.Rate(ctx, -1), ErrInvalidRating)
	require.NoError(t, d.Rate(ctx, 4.5))

	_, err := d.AddComment(ctx, "   ")
	assert.ErrorIs(t, err, ErrEmptyComment)
	c, err := d.AddComment(ctx, "  so good ")
	require.NoError(t, err)
	assert.Equal(t, "so good", c.Content)

	r, ok := d.Recipe()
	require.True(t, ok)
	assert.Equal(t, 4.1, r.Rating)
	assert.Len(t, r.Comments, 2)

	v, err = d.ToggleBookmark(ctx)
	require.NoError(t, err)
	assert.False(t, v)
}

func TestDetail_WritesRequireLogin(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repomock.NewMockRepository(ctrl)
	ctx := context.Background()

	repo.EXPECT().GetRecipe(gomock.Any(), recipe.ID("7")).Return(recipe.Recipe{ID: "7"}, nil)
	repo.EXPECT().BookmarkStatus(gomock.Any(), recipe.ID("7")).Return(false, authErr)
	repo.EXPECT().RateRecipe(gomock.Any(), gomock.Any(), gomock.Any()).Return(recipe.Recipe{}, authErr)
	repo.EXPECT().AddComment(gomock.Any(), gomock.Any(), gomock.Any()).Return(recipe.Comment{}, authErr)
	repo.EXPECT().SetBookmark(gomock.Any(), gomock.Any()).Return(authErr)

	d := NewDetail(repo, testConfig())
	defer d.Close()

	require.NoError(t, d.Load(ctx, "7"))
	v, known := d.Bookmarked()
	assert.True(t, known, "auth failure on read means not bookmarked")
	assert.False(t, v)

	assert.ErrorIs(t, d.Rate(ctx, 2), ErrLoginRequired)
	_, err := d.AddComment(ctx, "hi")
	assert.ErrorIs(t, err, ErrLoginRequired)
	_, err = d.ToggleBookmark(ctx)
	assert.ErrorIs(t, err, ErrLoginRequired)

	v, _ = d.Bookmarked()
	assert.False(t, v)
}

func TestDetail_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repomock.NewMockRepository(ctrl)
	repo.EXPECT().GetRecipe(gomock.Any(), gomock.Any()).Return(recipe.Recipe{}, &repository.Error{Kind: repository.KindNotFound, Status: 404})
	repo.EXPECT().BookmarkStatus(gomock.Any(), gomock.Any()).Return(false, nil).AnyTimes()

	d := NewDetail(repo, testConfig())
	defer d.Close()

	err := d.Load(context.Background(), "404")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, ok := d.Recipe()
	assert.False(t, ok)
}

func TestMine(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repomock.NewMockRepository(ctrl)
	ctx := context.Background()

	own := []recipe.Recipe{
		{ID: "10", Title: "Chili", Ingredients: recipe.Ingredients{"beans"}},
		{ID: "11", Title: "Bread"},
	}
	saved := []recipe.Recipe{{ID: "2", Title: "Ramen"}, {ID: "3", Title: "Curry"}}

	repo.EXPECT().ListOwnRecipes(gomock.Any(), repository.DefaultListLimit).Return(own, nil)
	repo.EXPECT().ListBookmarked(gomock.Any(), repository.DefaultListLimit).Return(saved, nil)

	m := NewMine(repo, testConfig())
	defer m.Close()

	require.NoError(t, m.Load(ctx))
	assert.Equal(t, own, m.Own())
	assert.Equal(t, saved, m.Bookmarked())

	// Update with no edits never reaches the remote API.
	_, err := m.Update(ctx, "10", recipe.DraftOf(own[0]))
	assert.ErrorIs(t, err, ErrNoChanges)
	_, err = m.Update(ctx, "99", recipe.Draft{Title: "x"})
	assert.ErrorIs(t, err, ErrNotOwned)

	draft := recipe.DraftOf(own[0])
	draft.Title = "Five Alarm Chili"
	repo.EXPECT().UpdateRecipe(gomock.Any(), recipe.ID("10"), draft).Return(recipe.Recipe{ID: "10", Title: "Five Alarm Chili"}, nil)
	updated, err := m.Update(ctx, "10", draft)
	require.NoError(t, err)
	assert.Equal(t, "Five Alarm Chili", updated.Title)
	assert.Equal(t, "Five Alarm Chili", m.Own()[0].Title)

	_, err = m.Create(ctx, recipe.Draft{})
	assert.Error(t, err, "title is required")

	repo.EXPECT().CreateRecipe(gomock.Any(), recipe.Draft{Title: "Pie"}).Return(recipe.Recipe{ID: "12", Title: "Pie"}, nil)
	created, err := m.Create(ctx, recipe.Draft{Title: "Pie"})
	require.NoError(t, err)
	assert.Equal(t, recipe.ID("12"), created.ID)
	assert.Len(t, m.Own(), 3)

	repo.EXPECT().ClearBookmark(gomock.Any(), recipe.ID("2")).Return(nil)
	require.NoError(t, m.RemoveBookmark(ctx, "2"))
	assert.Equal(t, []recipe.Recipe{{ID: "3", Title: "Curry"}}, m.Bookmarked())
	assert.ErrorIs(t, m.RemoveBookmark(ctx, "2"), ErrNotBookmarked)

	repo.EXPECT().DeleteRecipe(gomock.Any(), recipe.ID("11")).Return(nil)
	repo.EXPECT().ListOwnRecipes(gomock.Any(), repository.DefaultListLimit).
		Return([]recipe.Recipe{{ID: "10", Title: "Five Alarm Chili"}, {ID: "12", Title: "Pie"}}, nil)
	require.NoError(t, m.Delete(ctx, "11"))
	assert.Equal(t, []recipe.ID{"10", "12"}, recipe.IDs(m.Own()))
}

func TestMine_RemoveBookmarkRollsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repomock.NewMockRepository(ctrl)
	ctx := context.Background()

	repo.EXPECT().ListOwnRecipes(gomock.Any(), gomock.Any()).Return(nil, authErr)
	repo.EXPECT().ListBookmarked(gomock.Any(), gomock.Any()).Return([]recipe.Recipe{{ID: "2"}}, nil)
	repo.EXPECT().ClearBookmark(gomock.Any(), recipe.ID("2")).Return(&repository.Error{Kind: repository.KindNetwork})

	m := NewMine(repo, testConfig())
	defer m.Close()

	require.NoError(t, m.Load(ctx))
	assert.Empty(t, m.Own())

	err := m.RemoveBookmark(ctx, "2")
	assert.Error(t, err)
	assert.Len(t, m.Bookmarked(), 1)
}

func TestRegistry(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repomock.NewMockRepository(ctrl)

	r := NewRegistry()
	e := NewExplore(repo, testConfig())
	f := NewFeatured(repo, testConfig())

	eid, err := r.Mount("alice", e)
	require.NoError(t, err)
	fid, err := r.Mount("alice", f)
	require.NoError(t, err)
	assert.NotEqual(t, eid, fid)
	assert.Equal(t, 2, r.Len())

	got, err := Lookup[*Explore](r, eid, "alice")
	require.NoError(t, err)
	assert.Same(t, e, got)

	_, err = Lookup[*Explore](r, fid, "alice")
	assert.ErrorIs(t, err, ErrScreenNotFound)

	require.NoError(t, r.Unmount(eid, "alice"))
	assert.ErrorIs(t, e.Load(context.Background()), ErrClosed)
	assert.ErrorIs(t, r.Unmount(eid, "alice"), ErrScreenNotFound)

	r.Close()
	assert.Equal(t, 0, r.Len())
	assert.ErrorIs(t, f.Load(context.Background()), ErrClosed)
	_, err = r.Mount("alice", e)
	assert.ErrorIs(t, err, ErrClosed)
}

type fakeScreen struct {
	mu     sync.Mutex
	closed int
}

func (s *fakeScreen) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed++
}

func (s *fakeScreen) closeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func TestRegistry_OtherViewersCannotReachScreen(t *testing.T) {
	r := NewRegistry()
	defer r.Close()

	s := &fakeScreen{}
	id, err := r.Mount("alice", s)
	require.NoError(t, err)

	for _, owner := range []string{"", "bob"} {
		_, err := Lookup[*fakeScreen](r, id, owner)
		assert.ErrorIs(t, err, ErrScreenNotFound, owner)
		assert.ErrorIs(t, r.Unmount(id, owner), ErrScreenNotFound, owner)
	}
	assert.Equal(t, 0, s.closeCount())

	got, err := Lookup[*fakeScreen](r, id, "alice")
	require.NoError(t, err)
	assert.Same(t, s, got)
}

func TestRegistry_SweepClosesIdleScreens(t *testing.T) {
	r := NewRegistry(WithTTL(time.Minute))
	defer r.Close()

	idle, busy := &fakeScreen{}, &fakeScreen{}
	idleID, err := r.Mount("", idle)
	require.NoError(t, err)
	busyID, err := r.Mount("", busy)
	require.NoError(t, err)

	assert.Equal(t, 0, r.Sweep(time.Now()))

	// Touch busy so it outlives idle by the time the sweep runs.
	time.Sleep(20 * time.Millisecond)
	_, err = Lookup[*fakeScreen](r, busyID, "")
	require.NoError(t, err)

	assert.Equal(t, 1, r.Sweep(time.Now().Add(time.Minute-10*time.Millisecond)))
	assert.Equal(t, 1, idle.closeCount())
	assert.Equal(t, 0, busy.closeCount())
	_, err = Lookup[*fakeScreen](r, idleID, "")
	assert.ErrorIs(t, err, ErrScreenNotFound)

	assert.Equal(t, 1, r.Sweep(time.Now().Add(2*time.Minute)))
	assert.Equal(t, 1, busy.closeCount())
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_SweepWithoutTTLKeepsScreens(t *testing.T) {
	r := NewRegistry()
	defer r.Close()

	_, err := r.Mount("", &fakeScreen{})
	require.NoError(t, err)
	assert.Equal(t, 0, r.Sweep(time.Now().Add(24*time.Hour)))
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_RunUnmountsExpiredFeatured(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repomock.NewMockRepository(ctrl)
	repo.EXPECT().ListRecipes(gomock.Any(), gomock.Any()).Return(desserts(4), nil)

	r := NewRegistry(WithTTL(20 * time.Millisecond))
	defer r.Close()

	f := NewFeatured(repo, testConfig())
	require.NoError(t, f.Load(context.Background()))
	_, err := r.Mount("", f)
	require.NoError(t, err)
	f.Start(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		r.Run(ctx)
	}()

	require.Eventually(t, func() bool { return r.Len() == 0 }, time.Second, 5*time.Millisecond)
	assert.ErrorIs(t, f.Load(context.Background()), ErrClosed)

	cancel()
	<-done
}

func TestRegistry_MaxScreens(t *testing.T) {
	r := NewRegistry(WithMaxScreens(2), WithTTL(time.Hour))
	defer r.Close()

	_, err := r.Mount("alice", &fakeScreen{})
	require.NoError(t, err)
	id, err := r.Mount("bob", &fakeScreen{})
	require.NoError(t, err)

	_, err = r.Mount("carol", &fakeScreen{})
	assert.ErrorIs(t, err, ErrTooManyScreens)
	assert.Equal(t, 2, r.Len())

	require.NoError(t, r.Unmount(id, "bob"))
	_, err = r.Mount("carol", &fakeScreen{})
	assert.NoError(t, err)
}
