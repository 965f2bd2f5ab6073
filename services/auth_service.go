package services

import (
	"errors"
	"fmt"

	"github.com/Soumyosish/Holistic-Wellness-Monitor-sub000/models"
	"github.com/Soumyosish/Holistic-Wellness-Monitor-sub000/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name" binding:"required"`

	// Optional profile supplied at registration; when complete, derived
	// targets are populated immediately.
	Age           int     `json:"age"`
	HeightCm      float64 `json:"height_cm"`
	WeightKg      float64 `json:"weight_kg"`
	Gender        string  `json:"gender"`
	ActivityLevel string  `json:"activity_level"`
	Goal          string  `json:"goal"`
}

func (s *AuthService) Register(in RegisterInput) (*models.User, error) {
	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		UserID:        uuid.NewString(),
		Email:         in.Email,
		Password:      hashed,
		FullName:      in.FullName,
		Age:           in.Age,
		HeightCm:      in.HeightCm,
		WeightKg:      in.WeightKg,
		Gender:        in.Gender,
		ActivityLevel: in.ActivityLevel,
		Goal:          in.Goal,
	}

	if profileComplete(&user) {
		applyDerivedTargets(&user)
		user.ProfileCompleted = true
	}

	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: email already registered", ErrValidation)
		}
		return nil, err
	}
	return &user, nil
}

// Authenticate checks credentials and returns a signed JWT.
func (s *AuthService) Authenticate(email, password string) (string, *models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return "", nil, errors.New("invalid email or password")
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return "", nil, errors.New("invalid email or password")
	}

	token, err := utils.GenerateJWT(user.ID, user.Email)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}
