package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/staffdesk/api/internal/api/types"
	"github.com/staffdesk/api/internal/repository"
	"github.com/staffdesk/api/internal/services"
)

// multipart form parts other than the file itself get this much headroom
const uploadFormOverhead = 64 << 10

type EmployeesHandler struct {
	svc       services.EmployeeService
	maxUpload int64
}

func NewEmployeesHandler(svc services.EmployeeService, maxUpload int64) *EmployeesHandler {
	return &EmployeesHandler{svc: svc, maxUpload: maxUpload}
}

func employeeID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func (h *EmployeesHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per_page"))
	page, perPage = services.ClampPage(page, perPage)

	includeDeleted := q.Get("include_deleted") == "true"
	params := services.ListParams{
		Page:    page,
		PerPage: perPage,
		Filter: repository.EmployeeFilter{
			Search:         q.Get("search"),
			Department:     q.Get("department"),
			Status:         q.Get("status"),
			IncludeDeleted: includeDeleted,
		},
	}

	items, meta, err := h.svc.List(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.NewEmployeeListResponse(items, meta, includeDeleted))
}

func (h *EmployeesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := employeeID(r)
	if !ok {
		writeBadRequest(w, "Employee id must be a positive integer")
		return
	}
	includeDeleted := r.URL.Query().Get("include_deleted") == "true"

	emp, err := h.svc.Get(r.Context(), id, includeDeleted)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.EmployeeEnvelope{Employee: types.NewEmployeeResponse(emp, includeDeleted)})
}

func (h *EmployeesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Request body must be valid JSON")
		return
	}

	emp, err := h.svc.Create(r.Context(), services.CreateEmployeeInput{
		Name:       req.Name,
		Email:      req.Email,
		Department: req.Department,
		Position:   req.Position,
		Salary:     req.Salary,
		HireDate:   req.HireDate,
		Phone:      req.Phone,
		Address:    req.Address,
		Status:     req.Status,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, types.EmployeeCreatedResponse{
		Message:  "Employee created successfully",
		Employee: types.NewEmployeeResponse(emp, false),
	})
}

func (h *EmployeesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := employeeID(r)
	if !ok {
		writeBadRequest(w, "Employee id must be a positive integer")
		return
	}
	var req types.UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Request body must be valid JSON")
		return
	}

	emp, err := h.svc.Update(r.Context(), id, services.UpdateEmployeeInput{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		Department: req.Department,
		Position:   req.Position,
		Salary:     req.Salary,
		HireDate:   req.HireDate,
		Status:     req.Status,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.EmployeeCreatedResponse{
		Message:  "Employee updated successfully",
		Employee: types.NewEmployeeResponse(emp, false),
	})
}

func (h *EmployeesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := employeeID(r)
	if !ok {
		writeBadRequest(w, "Employee id must be a positive integer")
		return
	}
	permanent := r.URL.Query().Get("permanent") == "true"

	if err := h.svc.Delete(r.Context(), id, permanent); err != nil {
		writeError(w, err)
		return
	}
	msg := "Employee deleted successfully"
	if permanent {
		msg = "Employee permanently deleted"
	}
	writeJSON(w, http.StatusOK, types.MessageResponse{Message: msg})
}

func (h *EmployeesHandler) Restore(w http.ResponseWriter, r *http.Request) {
	id, ok := employeeID(r)
	if !ok {
		writeBadRequest(w, "Employee id must be a positive integer")
		return
	}

	emp, err := h.svc.Restore(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.EmployeeCreatedResponse{
		Message:  "Employee restored successfully",
		Employee: types.NewEmployeeResponse(emp, false),
	})
}

func (h *EmployeesHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *EmployeesHandler) UploadProfilePicture(w http.ResponseWriter, r *http.Request) {
	id, ok := employeeID(r)
	if !ok {
		writeBadRequest(w, "Employee id must be a positive integer")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+uploadFormOverhead)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSON(w, http.StatusRequestEntityTooLarge, types.ErrorResponse{
				Error:   "Request Entity Too Large",
				Message: "Uploaded file exceeds the maximum allowed size",
			})
			return
		}
		writeBadRequest(w, "Request must be multipart/form-data")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeBadRequest(w, "No file provided")
		return
	}
	defer file.Close()
	if header.Filename == "" {
		writeBadRequest(w, "No file selected")
		return
	}

	relpath, err := h.svc.SetProfilePicture(r.Context(), id, header.Filename, file)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.UploadResponse{
		Message:            "Profile picture uploaded successfully",
		ProfilePicturePath: relpath,
	})
}

func (h *EmployeesHandler) ProfilePicture(w http.ResponseWriter, r *http.Request) {
	id, ok := employeeID(r)
	if !ok {
		writeBadRequest(w, "Employee id must be a positive integer")
		return
	}

	rc, contentType, err := h.svc.ProfilePicture(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	defer rc.Close()
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "private, max-age=300")
	io.Copy(w, rc)
}
