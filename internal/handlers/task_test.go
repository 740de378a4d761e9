package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/taskforce/taskforce-api/internal/dto"
	"github.com/taskforce/taskforce-api/internal/models"
)

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	env      *testEnv
	admin    *models.User
	manager  *models.User
	employee *models.User
	other    *models.User
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	suite.env = setupTestEnv(suite.T())
	suite.admin = suite.env.createUser(suite.T(), "admin@test.com", models.RoleAdmin, true)
	suite.manager = suite.env.createUser(suite.T(), "manager@test.com", models.RoleManager, true)
	suite.employee = suite.env.createUser(suite.T(), "emp1@test.com", models.RoleEmployee, true)
	suite.other = suite.env.createUser(suite.T(), "emp2@test.com", models.RoleEmployee, true)
}

func (suite *TaskHandlerTestSuite) TestCreateTask() {
	w := suite.env.request(suite.T(), http.MethodPost, "/api/tasks", map[string]any{
		"title":       "Ship release",
		"description": "Cut the 1.4 release",
		"priority":    "high",
		"assignedTo":  suite.employee.ID,
	}, suite.env.token(suite.T(), suite.manager))

	suite.Require().Equal(http.StatusCreated, w.Code)

	var task models.Task
	decodeBody(suite.T(), w, &task)
	suite.Equal(models.TaskStatusPending, task.Status)
	suite.Equal(models.TaskPriorityHigh, task.Priority)
	suite.Equal(suite.manager.ID, task.CreatedBy)
	suite.Equal(suite.manager.Name, task.CreatedByName)
	suite.NotEmpty(task.ID)
}

// An unrecognized priority is stored as medium, not rejected.
func (suite *TaskHandlerTestSuite) TestCreateTaskCoercesPriority() {
	w := suite.env.request(suite.T(), http.MethodPost, "/api/tasks", map[string]any{
		"title":    "Triage inbox",
		"priority": "urgent",
	}, suite.env.token(suite.T(), suite.admin))

	suite.Require().Equal(http.StatusCreated, w.Code)

	var task models.Task
	decodeBody(suite.T(), w, &task)
	suite.Equal(models.TaskPriorityMedium, task.Priority)

	stored, err := suite.env.taskRepo.FindByID(task.ID)
	suite.Require().NoError(err)
	suite.Equal(models.TaskPriorityMedium, stored.Priority)
}

func (suite *TaskHandlerTestSuite) TestCreateTaskForbiddenForEmployee() {
	w := suite.env.request(suite.T(), http.MethodPost, "/api/tasks", map[string]any{
		"title": "Sneaky task",
	}, suite.env.token(suite.T(), suite.employee))

	suite.Equal(http.StatusForbidden, w.Code)
}

// An employee only ever sees their own tasks, even when they supply an
// assignedTo filter pointing at someone else.
func (suite *TaskHandlerTestSuite) TestListTasksEmployeeScoping() {
	suite.env.createTask(suite.T(), "mine", suite.manager, suite.employee)
	suite.env.createTask(suite.T(), "theirs", suite.manager, suite.other)
	suite.env.createTask(suite.T(), "unassigned", suite.manager, nil)

	w := suite.env.request(suite.T(), http.MethodGet,
		"/api/tasks?assignedTo="+suite.other.ID, nil,
		suite.env.token(suite.T(), suite.employee))

	suite.Require().Equal(http.StatusOK, w.Code)

	var tasks []dto.TaskView
	decodeBody(suite.T(), w, &tasks)
	suite.Require().Len(tasks, 1)
	suite.Equal("mine", tasks[0].Title)
	suite.Require().NotNil(tasks[0].AssignedTo)
	suite.Equal(suite.employee.ID, *tasks[0].AssignedTo)
}

func (suite *TaskHandlerTestSuite) TestListTasksManagerFilters() {
	suite.env.createTask(suite.T(), "for emp1", suite.manager, suite.employee)
	suite.env.createTask(suite.T(), "for emp2", suite.manager, suite.other)

	w := suite.env.request(suite.T(), http.MethodGet,
		"/api/tasks?assignedTo="+suite.other.ID, nil,
		suite.env.token(suite.T(), suite.manager))

	suite.Require().Equal(http.StatusOK, w.Code)

	var tasks []dto.TaskView
	decodeBody(suite.T(), w, &tasks)
	suite.Require().Len(tasks, 1)
	suite.Equal("for emp2", tasks[0].Title)
}

func (suite *TaskHandlerTestSuite) TestListTasksResolvesAssigneeNames() {
	suite.env.createTask(suite.T(), "assigned", suite.manager, suite.employee)
	suite.env.createTask(suite.T(), "unassigned", suite.manager, nil)

	// Dangling reference: assignee deleted out from under the task.
	dangling := suite.env.createTask(suite.T(), "dangling", suite.manager, suite.other)
	suite.Require().NoError(suite.env.db.Delete(&models.User{}, "id = ?", suite.other.ID).Error)

	w := suite.env.request(suite.T(), http.MethodGet, "/api/tasks", nil,
		suite.env.token(suite.T(), suite.manager))

	suite.Require().Equal(http.StatusOK, w.Code)

	var tasks []dto.TaskView
	decodeBody(suite.T(), w, &tasks)
	suite.Require().Len(tasks, 3)

	byTitle := make(map[string]dto.TaskView, len(tasks))
	for _, task := range tasks {
		byTitle[task.Title] = task
	}
	suite.Equal(suite.employee.Name, byTitle["assigned"].AssignedToName)
	suite.Equal(dto.UnassignedName, byTitle["unassigned"].AssignedToName)
	suite.Equal(dto.UnassignedName, byTitle["dangling"].AssignedToName)
	suite.Equal(dangling.ID, byTitle["dangling"].ID)
}

func (suite *TaskHandlerTestSuite) TestGetTask() {
	task := suite.env.createTask(suite.T(), "readable", suite.manager, suite.employee)

	w := suite.env.request(suite.T(), http.MethodGet, "/api/tasks/"+task.ID, nil,
		suite.env.token(suite.T(), suite.employee))

	suite.Require().Equal(http.StatusOK, w.Code)

	var got models.Task
	decodeBody(suite.T(), w, &got)
	suite.Equal(task.ID, got.ID)
}

func (suite *TaskHandlerTestSuite) TestGetTaskForbiddenForOtherEmployee() {
	task := suite.env.createTask(suite.T(), "private", suite.manager, suite.other)

	w := suite.env.request(suite.T(), http.MethodGet, "/api/tasks/"+task.ID, nil,
		suite.env.token(suite.T(), suite.employee))

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *TaskHandlerTestSuite) TestGetTaskNotFound() {
	w := suite.env.request(suite.T(), http.MethodGet, "/api/tasks/missing-id", nil,
		suite.env.token(suite.T(), suite.admin))

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TaskHandlerTestSuite) TestUpdateTaskPartial() {
	task := suite.env.createTask(suite.T(), "old title", suite.manager, suite.employee)

	w := suite.env.request(suite.T(), http.MethodPut, "/api/tasks/"+task.ID, map[string]any{
		"title": "new title",
	}, suite.env.token(suite.T(), suite.manager))

	suite.Require().Equal(http.StatusOK, w.Code)

	var updated models.Task
	decodeBody(suite.T(), w, &updated)
	suite.Equal("new title", updated.Title)
	suite.Equal("test description", updated.Description, "unsupplied fields stay untouched")
	suite.Require().NotNil(updated.AssignedTo)
	suite.Equal(suite.employee.ID, *updated.AssignedTo)
}

func (suite *TaskHandlerTestSuite) TestUpdateTaskNoFields() {
	task := suite.env.createTask(suite.T(), "untouched", suite.manager, nil)

	w := suite.env.request(suite.T(), http.MethodPut, "/api/tasks/"+task.ID,
		map[string]any{}, suite.env.token(suite.T(), suite.admin))

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestUpdateTaskNotFound() {
	w := suite.env.request(suite.T(), http.MethodPut, "/api/tasks/missing-id", map[string]any{
		"title": "whatever",
	}, suite.env.token(suite.T(), suite.admin))

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TaskHandlerTestSuite) TestUpdateStatusByAssignee() {
	task := suite.env.createTask(suite.T(), "workable", suite.manager, suite.employee)

	w := suite.env.request(suite.T(), http.MethodPut, "/api/tasks/"+task.ID+"/status",
		map[string]string{"status": "in_progress"},
		suite.env.token(suite.T(), suite.employee))

	suite.Require().Equal(http.StatusOK, w.Code)

	var updated models.Task
	decodeBody(suite.T(), w, &updated)
	suite.Equal(models.TaskStatusInProgress, updated.Status)
}

// An employee cannot move someone else's task; the status must stay put.
func (suite *TaskHandlerTestSuite) TestUpdateStatusForbiddenForNonAssignee() {
	task := suite.env.createTask(suite.T(), "not yours", suite.manager, suite.other)

	w := suite.env.request(suite.T(), http.MethodPut, "/api/tasks/"+task.ID+"/status",
		map[string]string{"status": "completed"},
		suite.env.token(suite.T(), suite.employee))

	suite.Require().Equal(http.StatusForbidden, w.Code)

	stored, err := suite.env.taskRepo.FindByID(task.ID)
	suite.Require().NoError(err)
	suite.Equal(models.TaskStatusPending, stored.Status)
}

func (suite *TaskHandlerTestSuite) TestUpdateStatusManagerAnyTask() {
	task := suite.env.createTask(suite.T(), "managed", suite.admin, suite.other)

	w := suite.env.request(suite.T(), http.MethodPut, "/api/tasks/"+task.ID+"/status",
		map[string]string{"status": "review"},
		suite.env.token(suite.T(), suite.manager))

	suite.Require().Equal(http.StatusOK, w.Code)
}

func (suite *TaskHandlerTestSuite) TestUpdateStatusInvalid() {
	task := suite.env.createTask(suite.T(), "stuck", suite.manager, suite.employee)

	w := suite.env.request(suite.T(), http.MethodPut, "/api/tasks/"+task.ID+"/status",
		map[string]string{"status": "done"},
		suite.env.token(suite.T(), suite.employee))

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestDeleteTask() {
	task := suite.env.createTask(suite.T(), "doomed", suite.manager, nil)

	w := suite.env.request(suite.T(), http.MethodDelete, "/api/tasks/"+task.ID, nil,
		suite.env.token(suite.T(), suite.manager))
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.env.request(suite.T(), http.MethodDelete, "/api/tasks/"+task.ID, nil,
		suite.env.token(suite.T(), suite.manager))
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TaskHandlerTestSuite) TestDeleteTaskForbiddenForEmployee() {
	task := suite.env.createTask(suite.T(), "protected", suite.manager, suite.employee)

	w := suite.env.request(suite.T(), http.MethodDelete, "/api/tasks/"+task.ID, nil,
		suite.env.token(suite.T(), suite.employee))

	suite.Equal(http.StatusForbidden, w.Code)
}

func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
