package bootstrap

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"velora.id/homeserve/internal/model"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Role{},
		&model.User{},
		&model.Category{},
		&model.Service{},
		&model.ServiceRequest{},
		&model.Feedback{},
		&model.DailyVisit{},
	)
}

func SeedRoles(db *gorm.DB) error {
	defaultRoles := []model.Role{
		{Name: model.RoleAdmin, Description: "Administrator"},
		{Name: model.RoleProfessional, Description: "Service professional"},
		{Name: model.RoleCustomer, Description: "Customer"},
	}

	for _, role := range defaultRoles {
		var count int64
		if err := db.Model(&model.Role{}).
			Where("name = ?", role.Name).
			Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			if err := db.Create(&role).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

func SeedAdminUser(db *gorm.DB) error {
	var adminRole model.Role
	if err := db.Where("name = ?", model.RoleAdmin).First(&adminRole).Error; err != nil {
		return err
	}

	var count int64
	if err := db.Model(&model.User{}).
		Where("email = ?", "admin@homeserve.app").
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logrus.Info("admin user already exists, skipping seed")
		return nil
	}

	password := "admin123"
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	adminUser := model.User{
		Username:     "admin",
		Email:        "admin@homeserve.app",
		PasswordHash: string(hashedPasswordBytes),
		Active:       true,
	}

	if err := db.Create(&adminUser).Error; err != nil {
		return err
	}

	if err := db.Model(&adminUser).Association("Roles").Append(&adminRole); err != nil {
		return err
	}

	logrus.Info("admin user seeded (admin@homeserve.app / admin123)")
	return nil
}
