package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	var task Task
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"title":"x","status":"Pendiente","dueDate":"2025-06-01"}`), &task))
	require.NotNil(t, task.DueDate)
	assert.Equal(t, NewDate(2025, time.June, 1), *task.DueDate)

	out, err := json.Marshal(TaskInput{Title: "x", DueDate: task.DueDate})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"x","dueDate":"2025-06-01"}`, string(out))
}

func TestDateJSON_TimestampAndNull(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2025-06-01T23:00:00Z"`), &d))
	assert.Equal(t, "2025-06-01", d.String())

	var task Task
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"dueDate":null}`), &task))
	assert.Nil(t, task.DueDate)

	assert.Error(t, json.Unmarshal([]byte(`"01/06/2025"`), &d))
}

func TestTaskInputOmitsEmptyOptionals(t *testing.T) {
	out, err := json.Marshal(TaskInput{Title: "Solo título"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Solo título"}`, string(out))
}

func TestIDAcceptsNumberAndString(t *testing.T) {
	var u User
	require.NoError(t, json.Unmarshal([]byte(`{"id":42}`), &u))
	assert.Equal(t, ID("42"), u.ID)

	require.NoError(t, json.Unmarshal([]byte(`{"id":"abc"}`), &u))
	assert.Equal(t, ID("abc"), u.ID)

	require.NoError(t, json.Unmarshal([]byte(`{"id":null}`), &u))
	assert.Empty(t, u.ID)

	assert.Error(t, json.Unmarshal([]byte(`{"id":true}`), &u))
}

func TestParseStatus(t *testing.T) {
	tests := map[string]Status{
		"Pendiente":   StatusPending,
		"todo":        StatusPending,
		"EN PROGRESO": StatusInProgress,
		"in-progress": StatusInProgress,
		"completada":  StatusCompleted,
		"done":        StatusCompleted,
	}
	for input, want := range tests {
		got, ok := ParseStatus(input)
		assert.True(t, ok, input)
		assert.Equal(t, want, got, input)
	}

	_, ok := ParseStatus("archived")
	assert.False(t, ok)
}

func TestPriorityWeight(t *testing.T) {
	assert.Equal(t, 3, PriorityHigh.Weight())
	assert.Equal(t, 2, Priority("MEDIA").Weight())
	assert.Equal(t, 1, PriorityLow.Weight())
	assert.Equal(t, 0, Priority("").Weight())
	assert.Equal(t, 0, Priority("urgent").Weight())
}

func TestParseSortByAndOrder(t *testing.T) {
	by, ok := ParseSortBy("due")
	assert.True(t, ok)
	assert.Equal(t, SortDueDate, by)

	by, ok = ParseSortBy("")
	assert.True(t, ok)
	assert.Equal(t, SortNone, by)

	_, ok = ParseSortBy("created")
	assert.False(t, ok)

	order, ok := ParseSortOrder("DESC")
	assert.True(t, ok)
	assert.Equal(t, SortDesc, order)

	_, ok = ParseSortOrder("up")
	assert.False(t, ok)
}

func TestFilterSpecIsActive(t *testing.T) {
	assert.False(t, DefaultFilterSpec().IsActive())
	assert.False(t, FilterSpec{}.IsActive())

	spec := DefaultFilterSpec()
	spec.SortBy = SortTitle
	assert.True(t, spec.IsActive())

	spec = DefaultFilterSpec()
	spec.Course = "Historia"
	assert.True(t, spec.IsActive())
}

func TestTaskInputNormalize(t *testing.T) {
	in := TaskInput{Title: "  a ", Course: " c ", Priority: " ALTA ", Status: " Pendiente "}.Normalize()
	assert.Equal(t, TaskInput{Title: "a", Course: "c", Priority: PriorityHigh, Status: StatusPending}, in)
}

func TestInputFromTask(t *testing.T) {
	due := NewDate(2025, 1, 2)
	task := Task{ID: 3, Title: "t", Description: "d", DueDate: &due, Priority: PriorityLow, Course: "c", Status: StatusInProgress}
	assert.Equal(t, TaskInput{Title: "t", Description: "d", DueDate: &due, Priority: PriorityLow, Course: "c", Status: StatusInProgress}, InputFromTask(task))
}

func TestAlertIsActive(t *testing.T) {
	assert.True(t, Alert{Status: AlertActive}.IsActive())
	assert.False(t, Alert{Status: "desactivada"}.IsActive())
	assert.False(t, Alert{Status: "ejecutada"}.IsActive())
}

func TestTaskHasDueDate(t *testing.T) {
	var task Task
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"dueDate":""}`), &task))
	assert.False(t, task.HasDueDate())
	assert.Nil(t, InputFromTask(task).DueDate)

	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"dueDate":"2025-06-01"}`), &task))
	assert.True(t, task.HasDueDate())
	assert.False(t, Task{}.HasDueDate())
}
