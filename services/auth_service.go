package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"calorie-tracker/config"
	"calorie-tracker/models"
	"calorie-tracker/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Goal bounds enforced at this boundary; the entity itself stays dumb.
const (
	minCalorieGoal, maxCalorieGoal = 500, 10000
	minProteinGoal, maxProteinGoal = 10, 500
	minCarbsGoal, maxCarbsGoal     = 20, 800
	minFatGoal, maxFatGoal         = 10, 300
	minWaterGoalMl, maxWaterGoalMl = 250, 10000

	resetTokenTTL = 15 * time.Minute
)

type AuthService struct {
	db  *gorm.DB
	jwt config.JWTConfig
}

func NewAuthService(db *gorm.DB, jwtCfg config.JWTConfig) *AuthService {
	return &AuthService{db: db, jwt: jwtCfg}
}

type UserDto struct {
	ID             uint      `json:"id"`
	FirstName      string    `json:"firstName"`
	MiddleName     string    `json:"middleName,omitempty"`
	LastName       string    `json:"lastName"`
	FullName       string    `json:"fullName"`
	Email          string    `json:"email"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	CalorieGoal    int       `json:"calorieGoal"`
	ProteinGoal    int       `json:"proteinGoal"`
	CarbsGoal      int       `json:"carbsGoal"`
	FatGoal        int       `json:"fatGoal"`
	WaterGoalMl    int       `json:"waterGoalMl"`
}

type AuthResponse struct {
	Token string  `json:"token"`
	User  UserDto `json:"user"`
}

type GoalsDto struct {
	CalorieGoal int `json:"calorieGoal"`
	ProteinGoal int `json:"proteinGoal"`
	CarbsGoal   int `json:"carbsGoal"`
	FatGoal     int `json:"fatGoal"`
}

func userToDto(u *models.User) UserDto {
	return UserDto{
		ID:             u.ID,
		FirstName:      u.FirstName,
		MiddleName:     u.MiddleName,
		LastName:       u.LastName,
		FullName:       u.FullName(),
		Email:          u.Email,
		ProfilePicture: u.ProfilePicture,
		CreatedAt:      u.CreatedAt,
		CalorieGoal:    u.CalorieGoal,
		ProteinGoal:    u.ProteinGoal,
		CarbsGoal:      u.CarbsGoal,
		FatGoal:        u.FatGoal,
		WaterGoalMl:    u.WaterGoalMl,
	}
}

type RegisterInput struct {
	FirstName  string
	MiddleName string
	LastName   string
	Email      string
	Password   string
}

func (s *AuthService) Register(in RegisterInput) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		FirstName:    strings.TrimSpace(in.FirstName),
		MiddleName:   strings.TrimSpace(in.MiddleName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        email,
		PasswordHash: hash,
		CalorieGoal:  2000,
		ProteinGoal:  150,
		CarbsGoal:    250,
		FatGoal:      65,
		WaterGoalMl:  2000,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, s.jwt.Secret, s.jwt.TTL)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: userToDto(&user)}, nil
}

func (s *AuthService) Login(email, password string) (*AuthResponse, error) {
	var user models.User
	err := s.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrNotFound
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, s.jwt.Secret, s.jwt.TTL)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: userToDto(&user)}, nil
}

func (s *AuthService) getUser(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) GetUser(userID uint) (*UserDto, error) {
	user, err := s.getUser(userID)
	if err != nil {
		return nil, err
	}
	dto := userToDto(user)
	return &dto, nil
}

func (s *AuthService) UpdateProfile(userID uint, firstName, middleName, lastName string) (*UserDto, error) {
	user, err := s.getUser(userID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(firstName) == "" || strings.TrimSpace(lastName) == "" {
		return nil, fmt.Errorf("%w: first and last name are required", ErrInvalid)
	}

	user.FirstName = strings.TrimSpace(firstName)
	user.MiddleName = strings.TrimSpace(middleName)
	user.LastName = strings.TrimSpace(lastName)
	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}
	dto := userToDto(user)
	return &dto, nil
}

func (s *AuthService) UpdateProfilePicture(ctx context.Context, userID uint, base64Image string) (*UserDto, error) {
	user, err := s.getUser(userID)
	if err != nil {
		return nil, err
	}

	url, err := utils.UploadBase64ImageToS3(ctx, base64Image, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	user.ProfilePicture = url
	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}
	dto := userToDto(user)
	return &dto, nil
}

func (s *AuthService) ChangePassword(userID uint, currentPassword, newPassword string) error {
	user, err := s.getUser(userID)
	if err != nil {
		return err
	}

	if !utils.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return fmt.Errorf("%w: current password is incorrect", ErrInvalid)
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.db.Save(user).Error
}

// ForgotPassword emails a short-lived reset code. It succeeds silently for
// unknown emails so the endpoint cannot be used to probe accounts.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	var user models.User
	err := s.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	user.ResetToken = utils.GenerateRandomToken(6)
	user.ResetTokenExp = time.Now().Add(resetTokenTTL)
	if err := s.db.Save(&user).Error; err != nil {
		return err
	}

	if err := utils.SendResetEmail(ctx, user.Email, user.ResetToken); err != nil {
		logrus.WithError(err).Warn("reset email not sent")
	}
	return nil
}

func (s *AuthService) ResetPassword(token, newPassword string) error {
	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("%w: reset token is required", ErrInvalid)
	}

	var user models.User
	if err := s.db.Where("reset_token = ?", token).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: invalid or expired token", ErrInvalid)
		}
		return err
	}
	if time.Now().After(user.ResetTokenExp) {
		return fmt.Errorf("%w: invalid or expired token", ErrInvalid)
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = hash
	user.ResetToken = ""
	user.ResetTokenExp = time.Time{}
	return s.db.Save(&user).Error
}

func (s *AuthService) GetGoals(userID uint) (*GoalsDto, error) {
	user, err := s.getUser(userID)
	if err != nil {
		return nil, err
	}
	return &GoalsDto{
		CalorieGoal: user.CalorieGoal,
		ProteinGoal: user.ProteinGoal,
		CarbsGoal:   user.CarbsGoal,
		FatGoal:     user.FatGoal,
	}, nil
}

func (s *AuthService) UpdateGoals(userID uint, goals GoalsDto) (*GoalsDto, error) {
	switch {
	case goals.CalorieGoal < minCalorieGoal || goals.CalorieGoal > maxCalorieGoal:
		return nil, fmt.Errorf("%w: calorie goal must be between %d and %d", ErrInvalid, minCalorieGoal, maxCalorieGoal)
	case goals.ProteinGoal < minProteinGoal || goals.ProteinGoal > maxProteinGoal:
		return nil, fmt.Errorf("%w: protein goal must be between %d and %d", ErrInvalid, minProteinGoal, maxProteinGoal)
	case goals.CarbsGoal < minCarbsGoal || goals.CarbsGoal > maxCarbsGoal:
		return nil, fmt.Errorf("%w: carbs goal must be between %d and %d", ErrInvalid, minCarbsGoal, maxCarbsGoal)
	case goals.FatGoal < minFatGoal || goals.FatGoal > maxFatGoal:
		return nil, fmt.Errorf("%w: fat goal must be between %d and %d", ErrInvalid, minFatGoal, maxFatGoal)
	}

	user, err := s.getUser(userID)
	if err != nil {
		return nil, err
	}

	user.CalorieGoal = goals.CalorieGoal
	user.ProteinGoal = goals.ProteinGoal
	user.CarbsGoal = goals.CarbsGoal
	user.FatGoal = goals.FatGoal
	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}
	return &goals, nil
}

func (s *AuthService) UpdateWaterGoal(userID uint, milliliters int) error {
	if milliliters < minWaterGoalMl || milliliters > maxWaterGoalMl {
		return fmt.Errorf("%w: water goal must be between %d and %d ml", ErrInvalid, minWaterGoalMl, maxWaterGoalMl)
	}

	user, err := s.getUser(userID)
	if err != nil {
		return err
	}
	user.WaterGoalMl = milliliters
	return s.db.Save(user).Error
}

// DeleteAccount removes the user and everything they own in one
// transaction so a failure can never leave a half-deleted account.
func (s *AuthService) DeleteAccount(userID uint) error {
	user, err := s.getUser(userID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.EntryItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.WaterEntry{}).Error; err != nil {
			return err
		}
		if err := tx.
			Where("favorite_meal_id IN (?)",
				tx.Model(&models.FavoriteMeal{}).Select("id").Where("user_id = ?", userID)).
			Delete(&models.FavoriteMealItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.FavoriteMeal{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Food{}).Error; err != nil {
			return err
		}
		return tx.Delete(user).Error
	})
}
