package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prohmpiriya/courtside-tickets/internal/domain"
	"github.com/prohmpiriya/courtside-tickets/internal/dto"
	"github.com/prohmpiriya/courtside-tickets/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func userRouter(userSvc service.UserService, ticketSvc service.TicketService) *gin.Engine {
	h := NewUserHandler(userSvc, ticketSvc)
	r := gin.New()
	r.Use(asCaller())
	r.GET("/users/profile", h.GetProfile)
	r.PUT("/users/profile", h.UpdateProfile)
	r.GET("/admin/users", h.ListUsers)
	r.GET("/admin/users/:id", h.GetUser)
	r.PUT("/admin/users/:id", h.UpdateUser)
	r.DELETE("/admin/users/:id", h.DeleteUser)
	r.GET("/admin/users/:id/tickets", h.ListUserTickets)
	r.POST("/admin/users/:id/tickets", h.CreateUserTicket)
	r.GET("/admin/check", h.CheckAdmin)
	r.POST("/admin/bootstrap", h.Bootstrap)
	return r
}

func TestUserHandler_Profile(t *testing.T) {
	userSvc := new(MockUserService)
	userSvc.On("UpdateProfile", mock.Anything, "user-1", &dto.UpdateProfileRequest{Location: "Boston"}).
		Return(&domain.User{ID: "user-1", Location: "Boston"}, nil)

	w, env := doRequest(t, userRouter(userSvc, new(MockTicketService)), http.MethodPut, "/users/profile", "user-1", "user", map[string]interface{}{"location": "Boston"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"location":"Boston"`)
	userSvc.AssertExpectations(t)
}

func TestUserHandler_DeleteUser(t *testing.T) {
	t.Run("reports removed tickets", func(t *testing.T) {
		userSvc := new(MockUserService)
		userSvc.On("DeleteUser", mock.Anything, admin, "user-1").Return(&dto.DeleteUserResponse{UserID: "user-1", TicketsDeleted: 3}, nil)

		w, env := doRequest(t, userRouter(userSvc, new(MockTicketService)), http.MethodDelete, "/admin/users/user-1", "admin-1", "admin", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user_id":"user-1","tickets_deleted":3}`, string(env.Data))
	})

	t.Run("self delete", func(t *testing.T) {
		userSvc := new(MockUserService)
		userSvc.On("DeleteUser", mock.Anything, admin, "admin-1").Return(nil, domain.ErrCannotDeleteSelf)

		w, env := doRequest(t, userRouter(userSvc, new(MockTicketService)), http.MethodDelete, "/admin/users/admin-1", "admin-1", "admin", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "CANNOT_DELETE_SELF", env.Error.Code)
	})
}

func TestUserHandler_UpdateUser_SelfDemote(t *testing.T) {
	userSvc := new(MockUserService)
	userSvc.On("UpdateUser", mock.Anything, admin, "admin-1", mock.Anything).Return(nil, domain.ErrCannotDemoteSelf)

	w, env := doRequest(t, userRouter(userSvc, new(MockTicketService)), http.MethodPut, "/admin/users/admin-1", "admin-1", "admin", map[string]interface{}{
		"first_name": "Red", "last_name": "Auerbach", "email": "red@example.com", "is_admin": false,
	})

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "CANNOT_DEMOTE_SELF", env.Error.Code)
}

func TestUserHandler_UserTickets(t *testing.T) {
	ticketSvc := new(MockTicketService)
	ticketSvc.On("ListForUser", mock.Anything, admin, "user-1").Return([]*domain.Ticket{sampleTicket()}, nil)
	ticketSvc.On("CreateTicketForUser", mock.Anything, admin, "user-1", mock.Anything).Return(sampleTicket(), nil)
	r := userRouter(new(MockUserService), ticketSvc)

	w, env := doRequest(t, r, http.MethodGet, "/admin/users/user-1/tickets", "admin-1", "admin", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, env.Meta.Total)

	w, _ = doRequest(t, r, http.MethodPost, "/admin/users/user-1/tickets", "admin-1", "admin", map[string]interface{}{
		"game": "g", "section_type": "Floor", "section": "F1", "quantity": 2,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	ticketSvc.AssertExpectations(t)
}

func TestUserHandler_AdminCheckAndBootstrap(t *testing.T) {
	userSvc := new(MockUserService)
	userSvc.On("IsAdmin", mock.Anything, "user-1").Return(false, nil)
	userSvc.On("CreateFirstAdmin", mock.Anything, mock.Anything).Return(nil, domain.ErrAdminExists)
	r := userRouter(userSvc, new(MockTicketService))

	w, env := doRequest(t, r, http.MethodGet, "/admin/check", "user-1", "user", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"is_admin":false}`, string(env.Data))

	w, env = doRequest(t, r, http.MethodPost, "/admin/bootstrap", "", "", map[string]interface{}{
		"first_name": "Brad", "last_name": "Stevens", "email": "brad@example.com", "password": "Password1!",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "ADMIN_EXISTS", env.Error.Code)
}
