package inflight

import "strconv"

// TasksKey tags requests that replace the whole task list
const TasksKey = "tasks"

// TaskKey tags requests that touch a single task
func TaskKey(id int64) string {
	return "task:" + strconv.FormatInt(id, 10)
}
