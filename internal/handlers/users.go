package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hospital-app-server/internal/models"
	"hospital-app-server/internal/utils"
)

// UserHandler handles user administration (admin) and the doctor directory.
type UserHandler struct {
	DB *gorm.DB
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{DB: db}
}

// CreateUserRequest represents the request body for creating a user by an admin.
// Doctor and patient accounts get their domain profile created alongside.
type CreateUserRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Role      string `json:"role" binding:"required,oneof=admin doctor patient lab"`

	// Doctor profile fields, used when role is doctor.
	Specialization string `json:"specialization"`
	AvailableDays  string `json:"availableDays"`
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`

	// Patient profile fields, used when role is patient.
	Gender                string     `json:"gender"`
	DateOfBirth           *time.Time `json:"dateOfBirth"`
	BloodGroup            string     `json:"bloodGroup"`
	EmergencyContactName  string     `json:"emergencyContactName"`
	EmergencyContactPhone string     `json:"emergencyContactPhone"`
}

// CreateUser creates a new user account plus its domain profile.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var existing models.User
	if err := h.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		utils.BadRequest(c, "User with this email already exists")
		return
	} else if err != gorm.ErrRecordNotFound {
		utils.InternalServerError(c, "Database error")
		return
	}

	user := models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Role:      models.Role(req.Role),
		IsActive:  true,
	}
	if err := user.SetPassword(req.Password); err != nil {
		utils.InternalServerError(c, "Failed to hash password")
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		switch user.Role {
		case models.RoleDoctor:
			return tx.Create(&models.Doctor{
				UserID:         user.ID,
				Specialization: req.Specialization,
				AvailableDays:  req.AvailableDays,
				StartTime:      req.StartTime,
				EndTime:        req.EndTime,
				IsActive:       true,
			}).Error
		case models.RolePatient:
			return tx.Create(&models.Patient{
				UserID:                user.ID,
				Gender:                req.Gender,
				DateOfBirth:           req.DateOfBirth,
				BloodGroup:            req.BloodGroup,
				EmergencyContactName:  req.EmergencyContactName,
				EmergencyContactPhone: req.EmergencyContactPhone,
				IsActive:              true,
			}).Error
		}
		return nil
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to create user")
		return
	}

	utils.Created(c, "User created successfully", user.Sanitize())
}

// GetUsers lists all users (admin).
func (h *UserHandler) GetUsers(c *gin.Context) {
	var users []models.User
	if err := h.DB.Find(&users).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch users")
		return
	}

	sanitized := make([]models.UserSanitized, len(users))
	for i, u := range users {
		sanitized[i] = u.Sanitize()
	}
	utils.Success(c, "Users fetched successfully", sanitized)
}

// GetUserByID fetches one user (admin).
func (h *UserHandler) GetUserByID(c *gin.Context) {
	var user models.User
	if err := h.DB.Where("id = ?", c.Param("id")).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Database error")
		}
		return
	}
	utils.Success(c, "User fetched successfully", user.Sanitize())
}

// DeactivateUser soft-deletes a user account (admin). Rows are never
// physically removed.
func (h *UserHandler) DeactivateUser(c *gin.Context) {
	res := h.DB.Model(&models.User{}).Where("id = ?", c.Param("id")).Update("is_active", false)
	if res.Error != nil {
		utils.InternalServerError(c, "Failed to deactivate user")
		return
	}
	if res.RowsAffected == 0 {
		utils.NotFound(c, "User not found")
		return
	}
	utils.Success(c, "User deactivated", nil)
}

// GetDoctors lists active doctors with their availability window.
func (h *UserHandler) GetDoctors(c *gin.Context) {
	var doctors []models.Doctor
	if err := h.DB.Preload("User").Where("is_active = ?", true).Find(&doctors).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch doctors")
		return
	}

	type doctorView struct {
		models.Doctor
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	views := make([]doctorView, len(doctors))
	for i, d := range doctors {
		views[i] = doctorView{
			Doctor: d,
			Name:   d.User.FirstName + " " + d.User.LastName,
			Email:  d.User.Email,
		}
	}
	utils.Success(c, "Doctors fetched successfully", views)
}
