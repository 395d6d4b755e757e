package http

import (
	"encoding/json"
	"net/http"

	"github.com/pacificpay/payroll-backend-go/internal/domain/auth"
	"github.com/pacificpay/payroll-backend-go/internal/domain/user"
	"github.com/pacificpay/payroll-backend-go/internal/handler/http/response"
	authService "github.com/pacificpay/payroll-backend-go/internal/service/auth"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	CreateUser(w http.ResponseWriter, r *http.Request)
}

type authHandlerImpl struct {
	authService *authService.AuthService
}

func NewAuthHandler(svc *authService.AuthService) AuthHandler {
	return &authHandlerImpl{authService: svc}
}

func (h *authHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.authService.Login(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

type createUserRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *authHandlerImpl) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	role := user.Role(req.Role)
	if role != user.RoleAdmin && role != user.RoleOfficer {
		response.BadRequest(w, "Role must be 'admin' or 'officer'", nil)
		return
	}

	created, err := h.authService.CreateUser(r.Context(), req.Email, req.FullName, req.Password, role)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "User created", map[string]string{
		"id":        created.ID,
		"email":     created.Email,
		"full_name": created.FullName,
		"role":      string(created.Role),
	})
}
