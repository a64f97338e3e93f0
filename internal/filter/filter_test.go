package filter

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/taskbit/internal/models"
)

func date(s string) *models.Date {
	d, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return &d
}

func titles(tasks []models.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}

func sample() []models.Task {
	return []models.Task{
		{ID: 1, Title: "Ensayo de historia", Priority: models.PriorityMedium, Course: "Historia", Status: models.StatusPending, DueDate: date("2099-03-10")},
		{ID: 2, Title: "álgebra lineal", Priority: models.PriorityHigh, Course: "Matemáticas", Status: models.StatusInProgress, DueDate: date("2099-01-05")},
		{ID: 3, Title: "Lectura", Priority: models.PriorityLow, Course: "Historia", Status: models.StatusCompleted},
		{ID: 4, Title: "Proyecto final", Priority: "ALTA", Course: "Programación", Status: models.StatusPending, DueDate: date("2099-02-01")},
		{ID: 5, Title: "", Status: models.StatusPending},
	}
}

func TestApply_EmptyInput(t *testing.T) {
	specs := []models.FilterSpec{
		models.DefaultFilterSpec(),
		{Status: models.StatusPending, SortBy: models.SortTitle, SortOrder: models.SortDesc},
		{SearchTitle: "x", SortBy: models.SortDueDate},
	}
	for _, spec := range specs {
		got := Apply(nil, spec)
		require.NotNil(t, got)
		assert.Empty(t, got)

		got = Apply([]models.Task{}, spec)
		require.NotNil(t, got)
		assert.Empty(t, got)
	}
}

func TestApply_DefaultSpecKeepsOrder(t *testing.T) {
	tasks := sample()
	got := Apply(tasks, models.DefaultFilterSpec())
	assert.Equal(t, tasks, got)
}

func TestApply_MissingDueDateSortsLast(t *testing.T) {
	tasks := []models.Task{
		{Title: "B", Priority: models.PriorityHigh},
		{Title: "A", Priority: models.PriorityLow, DueDate: date("2099-01-01")},
	}

	for _, order := range []models.SortOrder{models.SortAsc, models.SortDesc} {
		got := Apply(tasks, models.FilterSpec{SortBy: models.SortDueDate, SortOrder: order})
		assert.Equal(t, []string{"A", "B"}, titles(got), "order %s", order)
	}
}

func TestApply_DueDateOrdering(t *testing.T) {
	asc := Apply(sample(), models.FilterSpec{SortBy: models.SortDueDate, SortOrder: models.SortAsc})
	assert.Equal(t, []string{"álgebra lineal", "Proyecto final", "Ensayo de historia", "Lectura", ""}, titles(asc))

	desc := Apply(sample(), models.FilterSpec{SortBy: models.SortDueDate, SortOrder: models.SortDesc})
	assert.Equal(t, []string{"Ensayo de historia", "Proyecto final", "álgebra lineal", "Lectura", ""}, titles(desc))
}

func TestApply_PriorityDescending(t *testing.T) {
	tasks := []models.Task{
		{Title: "low", Priority: models.PriorityLow},
		{Title: "none"},
		{Title: "high", Priority: models.PriorityHigh},
		{Title: "medium", Priority: models.PriorityMedium},
	}

	got := Apply(tasks, models.FilterSpec{SortBy: models.SortPriority, SortOrder: models.SortDesc})
	assert.Equal(t, []string{"high", "medium", "low", "none"}, titles(got))

	got = Apply(tasks, models.FilterSpec{SortBy: models.SortPriority, SortOrder: models.SortAsc})
	assert.Equal(t, []string{"none", "low", "medium", "high"}, titles(got))
}

func TestApply_PriorityIsStable(t *testing.T) {
	tasks := []models.Task{
		{ID: 1, Title: "first", Priority: models.PriorityHigh},
		{ID: 2, Title: "second", Priority: "Alta"},
		{ID: 3, Title: "third", Priority: models.PriorityHigh},
	}

	got := Apply(tasks, models.FilterSpec{SortBy: models.SortPriority, SortOrder: models.SortDesc})
	assert.Equal(t, []string{"first", "second", "third"}, titles(got))
}

func TestApply_TitleIsCaseAndAccentAware(t *testing.T) {
	tasks := []models.Task{
		{Title: "zeta"},
		{Title: "Beta"},
		{Title: "álgebra"},
		{Title: "alfa"},
	}

	got := Apply(tasks, models.FilterSpec{SortBy: models.SortTitle, SortOrder: models.SortAsc})
	assert.Equal(t, []string{"alfa", "álgebra", "Beta", "zeta"}, titles(got))

	got = Apply(tasks, models.FilterSpec{SortBy: models.SortTitle, SortOrder: models.SortDesc})
	assert.Equal(t, []string{"zeta", "Beta", "álgebra", "alfa"}, titles(got))
}

func TestApply_SearchTitle(t *testing.T) {
	got := Apply(sample(), models.FilterSpec{SearchTitle: "A"})
	assert.Equal(t, []string{"Ensayo de historia", "álgebra lineal", "Lectura", "Proyecto final"}, titles(got))

	for _, task := range got {
		assert.NotEmpty(t, task.Title)
	}
}

func TestApply_Filters(t *testing.T) {
	tests := []struct {
		name string
		spec models.FilterSpec
		want []int64
	}{
		{"status", models.FilterSpec{Status: models.StatusPending}, []int64{1, 4, 5}},
		{"status is exact", models.FilterSpec{Status: "pendiente"}, []int64{}},
		{"priority ignores case", models.FilterSpec{Priority: models.PriorityHigh}, []int64{2, 4}},
		{"course", models.FilterSpec{Course: "Historia"}, []int64{1, 3}},
		{"course is exact", models.FilterSpec{Course: "historia"}, []int64{}},
		{"combined", models.FilterSpec{Status: models.StatusPending, Course: "Historia"}, []int64{1}},
		{"search and priority", models.FilterSpec{SearchTitle: "PROY", Priority: "alta"}, []int64{4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(sample(), tt.spec)
			ids := []int64{}
			for _, task := range got {
				ids = append(ids, task.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	tasks := sample()
	snapshot := sample()

	specs := []models.FilterSpec{
		{SortBy: models.SortDueDate, SortOrder: models.SortDesc},
		{SortBy: models.SortPriority, SortOrder: models.SortAsc},
		{SortBy: models.SortTitle, SortOrder: models.SortDesc, Status: models.StatusPending},
	}
	for _, spec := range specs {
		got := Apply(tasks, spec)
		assert.Equal(t, snapshot, tasks)
		if len(got) > 0 {
			got[0].Title = "changed"
		}
		assert.Equal(t, snapshot, tasks)
	}
}

func TestApply_IsDeterministic(t *testing.T) {
	spec := models.FilterSpec{SortBy: models.SortTitle, SortOrder: models.SortAsc}
	assert.Equal(t, Apply(sample(), spec), Apply(sample(), spec))
}

func TestCountByStatus(t *testing.T) {
	counts := CountByStatus(sample())
	assert.Equal(t, 3, counts[models.StatusPending])
	assert.Equal(t, 1, counts[models.StatusInProgress])
	assert.Equal(t, 1, counts[models.StatusCompleted])

	empty := CountByStatus(nil)
	assert.Len(t, empty, len(models.Statuses))
	assert.Zero(t, empty[models.StatusCompleted])
}

func TestCourses(t *testing.T) {
	assert.Equal(t, []string{"Historia", "Matemáticas", "Programación"}, Courses(sample()))
	assert.Empty(t, Courses(nil))
}

func TestMatches_DueDateIgnored(t *testing.T) {
	task := models.Task{Title: "x", DueDate: &models.Date{Time: time.Now()}}
	assert.True(t, Matches(task, models.DefaultFilterSpec()))
}

func TestApply_BlankDueDateCountsAsMissing(t *testing.T) {
	var tasks []models.Task
	require.NoError(t, json.Unmarshal([]byte(`[
		{"id":1,"title":"blank","status":"Pendiente","dueDate":""},
		{"id":2,"title":"dated","status":"Pendiente","dueDate":"2099-01-01"}
	]`), &tasks))
	require.False(t, tasks[0].HasDueDate())

	for _, order := range []models.SortOrder{models.SortAsc, models.SortDesc} {
		spec := models.FilterSpec{SortBy: models.SortDueDate, SortOrder: order}
		assert.Equal(t, []string{"dated", "blank"}, titles(Apply(tasks, spec)), order)
	}
}
