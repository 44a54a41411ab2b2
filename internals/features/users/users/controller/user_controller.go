// file: internals/features/users/users/controller/user_controller.go
package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	userModel "kursusku_backend/internals/features/users/users/model"
	helper "kursusku_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// GET ME
// GET /api/u/users/me
func (ctrl *UserController) GetMe(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var user userModel.UserModel
	if err := ctrl.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
		}
		log.Println("[ERROR] Gagal membaca user:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca user")
	}
	return helper.JsonOK(c, "OK", user)
}

type updateMeRequest struct {
	UserFullName    *string `json:"user_full_name" validate:"omitempty,min=1"`
	UserDateOfBirth *string `json:"user_date_of_birth" validate:"omitempty,datetime=2006-01-02"`
}

// UPDATE ME
// PUT /api/u/users/me
// Nama & tanggal lahir dipakai di snapshot sertifikat; update di sini TIDAK
// mengubah sertifikat yang sudah terbit.
func (ctrl *UserController) UpdateMe(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req updateMeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var user userModel.UserModel
	if err := ctrl.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca user")
	}

	if req.UserFullName != nil {
		user.UserFullName = strings.TrimSpace(*req.UserFullName)
	}
	if req.UserDateOfBirth != nil {
		dob, err := time.Parse("2006-01-02", *req.UserDateOfBirth)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "user_date_of_birth harus format YYYY-MM-DD")
		}
		user.UserDateOfBirth = &dob
	}

	if err := ctrl.DB.Save(&user).Error; err != nil {
		log.Println("[ERROR] Gagal update user:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal update user")
	}
	return helper.JsonUpdated(c, "Profil diperbarui", user)
}
