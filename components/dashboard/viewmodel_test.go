package dashboard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReduceDoesNotMutateInput(t *testing.T) {
	t.Parallel()
	initial := InitialState()

	next := Reduce(initial, SummaryLoaded{Summary: DashboardCurrent{Total: Float(10)}})

	assert.False(t, initial.IsLoaded(SliceSummary))
	assert.Nil(t, initial.Summary)
	assert.True(t, next.IsLoaded(SliceSummary))
	assert.Equal(t, 10.0, *next.Summary.Total)
}

func TestReduceHistoryColorsChart(t *testing.T) {
	t.Parallel()
	state := Reduce(InitialState(), HistoryLoaded{History: DashboardHistory{
		Labels: []string{"Mar"},
		Data:   []HistoryDataset{{Label: "Budget", Data: []float64{100}}},
	}})
	assert.True(t, state.IsLoaded(SliceChart))
	assert.Equal(t, BudgetColor, state.Chart.Datasets[0].BackgroundColor)
}

func TestReduceFetchFailedKeepsOtherSlices(t *testing.T) {
	t.Parallel()
	state := Reduce(InitialState(), RecentItemsLoaded{Items: RecentItems{Items: []Item{{Name: "Tea", Price: 35}}}})
	state = Reduce(state, FetchFailed{Slice: SliceSummary, Err: errors.New("timeout")})

	assert.True(t, state.IsLoaded(SliceRecentItems))
	assert.Len(t, state.RecentItems, 1)
	assert.Equal(t, "timeout", state.Errors[SliceSummary])
	assert.Nil(t, state.Summary)

	state = Reduce(state, SummaryLoaded{Summary: DashboardCurrent{}})
	assert.NotContains(t, state.Errors, SliceSummary)
}

func TestReduceDialogsAndNavigation(t *testing.T) {
	t.Parallel()
	state := Reduce(InitialState(), OpenDialog{Dialog: DialogItems})
	assert.True(t, state.DialogOpen(DialogItems))
	assert.False(t, state.DialogOpen(DialogList))

	state = Reduce(state, CloseDialog{Dialog: DialogItems})
	assert.False(t, state.ItemsDialogOpen)

	state = Reduce(state, Navigate{Target: PathItemsCreate})
	assert.Equal(t, "/items/create", state.Navigation)

	state = Reduce(state, UnauthorizedReceived{Slice: SliceChart})
	assert.True(t, state.Unauthorized)
	assert.Equal(t, RootPath, state.Navigation)
}

func TestSliceOf(t *testing.T) {
	t.Parallel()
	assert.Equal(t, SliceSummary, SliceOf(SummaryLoaded{}))
	assert.Equal(t, SliceChart, SliceOf(HistoryLoaded{}))
	assert.Equal(t, SliceRecentItems, SliceOf(FetchFailed{Slice: SliceRecentItems}))
	assert.Equal(t, SliceDialogs, SliceOf(OpenDialog{}))
	assert.Equal(t, SliceNavigation, SliceOf(Navigate{}))
	assert.Equal(t, Slice(""), SliceOf(nil))
}

func TestParseDialogID(t *testing.T) {
	t.Parallel()
	id, ok := ParseDialogID("items")
	assert.True(t, ok)
	assert.Equal(t, DialogItems, id)
	id, ok = ParseDialogID("lists")
	assert.True(t, ok)
	assert.Equal(t, DialogList, id)
	_, ok = ParseDialogID("budgets")
	assert.False(t, ok)
}
