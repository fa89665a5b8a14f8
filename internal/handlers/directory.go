package handlers

import (
	"net/http"

	"PolicyDesk/internal/model"
	"PolicyDesk/internal/service"

	"go.uber.org/zap"
)

// DirectoryHandler - подразделения, грейды и пользователи.
type DirectoryHandler struct {
	Service *service.DirectoryService
	Logger  *zap.SugaredLogger
}

func NewDirectoryHandler(svc *service.DirectoryService, logger *zap.SugaredLogger) *DirectoryHandler {
	return &DirectoryHandler{Service: svc, Logger: logger}
}

func (h *DirectoryHandler) Departments(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.Departments(r.Context())
	if err != nil {
		fail(w, h.Logger, "Departments", err, "Database error")
		return
	}
	if list == nil {
		list = []model.Department{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"departments": list})
}

func (h *DirectoryHandler) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	var d model.Department
	if !decode(w, r, &d) {
		return
	}
	id, err := h.Service.CreateDepartment(r.Context(), d.Name, d.Description)
	if err != nil {
		fail(w, h.Logger, "CreateDepartment", err, "Failed to create department")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Department created successfully", "department_id": id})
}

func (h *DirectoryHandler) UpdateDepartment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var d model.Department
	if !decode(w, r, &d) {
		return
	}
	if err := h.Service.UpdateDepartment(r.Context(), id, d.Name, d.Description); err != nil {
		fail(w, h.Logger, "UpdateDepartment", err, "Failed to update department")
		return
	}
	writeMessage(w, http.StatusOK, "Department updated successfully")
}

func (h *DirectoryHandler) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Service.DeleteDepartment(r.Context(), id); err != nil {
		fail(w, h.Logger, "DeleteDepartment", err, "Failed to delete department")
		return
	}
	writeMessage(w, http.StatusOK, "Department deleted successfully")
}

func (h *DirectoryHandler) Grades(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.Grades(r.Context())
	if err != nil {
		fail(w, h.Logger, "Grades", err, "Database error")
		return
	}
	if list == nil {
		list = []model.Grade{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"grades": list})
}

func (h *DirectoryHandler) CreateGrade(w http.ResponseWriter, r *http.Request) {
	var g model.Grade
	if !decode(w, r, &g) {
		return
	}
	id, err := h.Service.CreateGrade(r.Context(), g)
	if err != nil {
		fail(w, h.Logger, "CreateGrade", err, "Failed to create grade")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Grade created successfully", "grade_id": id})
}

func (h *DirectoryHandler) UpdateGrade(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var g model.Grade
	if !decode(w, r, &g) {
		return
	}
	if err := h.Service.UpdateGrade(r.Context(), id, g); err != nil {
		fail(w, h.Logger, "UpdateGrade", err, "Failed to update grade")
		return
	}
	writeMessage(w, http.StatusOK, "Grade updated successfully")
}

func (h *DirectoryHandler) DeleteGrade(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Service.DeleteGrade(r.Context(), id); err != nil {
		fail(w, h.Logger, "DeleteGrade", err, "Failed to delete grade")
		return
	}
	writeMessage(w, http.StatusOK, "Grade deleted successfully")
}

// Users отдаёт активных пользователей; ?department_id= сужает выборку.
func (h *DirectoryHandler) Users(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.Users(r.Context(), queryInt(r, "department_id"))
	if err != nil {
		fail(w, h.Logger, "Users", err, "Database error")
		return
	}
	if list == nil {
		list = []model.User{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": list})
}

func (h *DirectoryHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var in service.NewUser
	if !decode(w, r, &in) {
		return
	}
	id, err := h.Service.CreateUser(r.Context(), in)
	if err != nil {
		fail(w, h.Logger, "CreateUser", err, "Failed to create user")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": "User created successfully", "user_id": id})
}

func (h *DirectoryHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in service.UserUpdate
	if !decode(w, r, &in) {
		return
	}
	if err := h.Service.UpdateUser(r.Context(), id, in); err != nil {
		fail(w, h.Logger, "UpdateUser", err, "Failed to update user")
		return
	}
	writeMessage(w, http.StatusOK, "User updated successfully")
}

func (h *DirectoryHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Service.DeleteUser(r.Context(), id); err != nil {
		fail(w, h.Logger, "DeleteUser", err, "Failed to delete user")
		return
	}
	writeMessage(w, http.StatusOK, "User deleted successfully")
}
