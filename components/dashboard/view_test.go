package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadedState(t *testing.T) State {
	t.Helper()
	state, err := NewPage(newStubSource()).Load(context.Background())
	require.NoError(t, err)
	return state
}

func TestBuildViewCardTexts(t *testing.T) {
	t.Parallel()
	view := BuildView(context.Background(), loadedState(t), ViewOptions{})

	require.Len(t, view.Cards, 2)
	require.Len(t, view.MiniCards, 2)
	assert.Equal(t, "10", view.Cards[0].MainText)
	assert.Equal(t, "Total items on current shopping list", view.Cards[0].SubText)
	assert.Equal(t, "/items/me", view.Cards[0].DirectLink)
	assert.Equal(t, "#602786", view.Cards[0].BackgroundColor)
	assert.Equal(t, "R300", view.Cards[1].MainText)
	assert.Equal(t, "/list/current", view.Cards[1].DirectLink)
	assert.Equal(t, "R150", view.MiniCards[0].MainText)
	assert.Equal(t, "/budgets", view.MiniCards[0].DirectLink)
	assert.Equal(t, "R80", view.MiniCards[1].MainText)
	assert.Equal(t, "#000000", view.MiniCards[1].TextColor)
	assert.Equal(t, "/metrics", view.MiniCards[1].DirectLink)
	assert.Len(t, view.RecentItems.Rows, 2)
	assert.Len(t, view.Chart.Datasets, 2)
}

func TestBuildViewFallbacks(t *testing.T) {
	t.Parallel()
	view := BuildView(context.Background(), InitialState(), ViewOptions{})
	assert.Equal(t, "Shopping list not found", view.Cards[0].MainText)
	assert.Equal(t, "R0", view.Cards[1].MainText)
	assert.Equal(t, "R0", view.MiniCards[0].MainText)
	assert.Equal(t, "R0", view.MiniCards[1].MainText)
	assert.Empty(t, view.RecentItems.Rows)

	partial := Reduce(InitialState(), SummaryLoaded{Summary: DashboardCurrent{Total: Float(3)}})
	view = BuildView(context.Background(), partial, ViewOptions{})
	assert.Equal(t, "3", view.Cards[0].MainText)
	assert.Equal(t, "R0", view.Cards[1].MainText)
}

func TestBuildViewDialogLinks(t *testing.T) {
	t.Parallel()
	state := Reduce(InitialState(), OpenDialog{Dialog: DialogList})
	view := BuildView(context.Background(), state, ViewOptions{
		Links: ViewLinks{Dashboard: "/shopping/dashboard/"},
	})

	assert.Equal(t, "/shopping/dashboard/?dialog=items", view.Cards[0].ActionLink)
	assert.Equal(t, "/shopping/dashboard/?dialog=lists", view.Cards[1].ActionLink)
	assert.Equal(t, "/shopping/dashboard/", view.Navbar.HomeLink)

	dialog, ok := view.OpenDialog()
	require.True(t, ok)
	assert.Equal(t, "View shopping lists or add items to shopping lists", dialog.Title)
	assert.Equal(t, "/shopping/dashboard/dialogs/lists/close", dialog.CloseHref)
	require.Len(t, dialog.Buttons, 2)
	assert.Equal(t, "View shopping list", dialog.Buttons[0].Text)
	assert.Equal(t, "/shopping/dashboard/dialogs/lists/1", dialog.Buttons[1].Href)
}

func TestBuildViewTranslates(t *testing.T) {
	t.Parallel()
	translations := Translations{
		"dashboard.card.budget.subtext": {"af": "Begroting oor"},
		"dashboard.navbar.brand":        {"default": "Kontroleskerm"},
	}
	view := BuildView(context.Background(), InitialState(), ViewOptions{Locale: "af-ZA", Translator: translations})
	assert.Equal(t, "Begroting oor", view.MiniCards[0].SubText)
	assert.Equal(t, "Kontroleskerm", view.Navbar.Brand)
	assert.Equal(t, "Average item price", view.MiniCards[1].SubText)
}

func TestPageViewAttachesHandlers(t *testing.T) {
	t.Parallel()
	page := NewPage(newStubSource())
	view := page.View(context.Background(), ViewOptions{})

	view.Cards[0].Click()
	assert.True(t, page.Snapshot().ItemsDialogOpen)

	view = page.View(context.Background(), ViewOptions{})
	dialog, ok := view.OpenDialog()
	require.True(t, ok)
	require.NoError(t, dialog.Press(0))
	state := page.Snapshot()
	assert.False(t, state.ItemsDialogOpen)
	assert.Equal(t, "/items/me", state.Navigation)
}

func TestDashboardPath(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "/shopping/dashboard/", DashboardPath("", "shopping"))
	assert.Equal(t, "/app/groceries/dashboard/", DashboardPath("/app/", "/groceries"))
	assert.Equal(t, "/dashboard/", DashboardPath("", ""))
}
