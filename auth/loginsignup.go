package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"karigar/db"
	"karigar/geo"
	"karigar/globals"
	"karigar/matching"
	"karigar/middleware"
	"karigar/models"
	"karigar/rdx"
	"karigar/utils"
)

const refreshTokenTTL = 7 * 24 * time.Hour

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	credentials
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Role    string `json:"role"` // client or worker

	// Worker-only fields; the home location may be left unset, which keeps
	// the worker out of matching until a real location arrives.
	Skills          []string `json:"skills"`
	Latitude        float64  `json:"latitude"`
	Longitude       float64  `json:"longitude"`
	ServiceRadiusKm float64  `json:"serviceRadiusKm"`
}

func loginHandler(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	var storedUser models.User
	err := db.UserCollection.FindOne(context.TODO(), bson.M{"username": creds.Username}).Decode(&storedUser)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedUser.Password), []byte(creds.Password)); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	claims := &middleware.Claims{
		Username: storedUser.Username,
		UserID:   storedUser.UserID,
		Role:     storedUser.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(12 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(globals.JwtSecret)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	refreshToken, err := generateRefreshToken()
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error generating refresh token")
		return
	}

	_, err = db.UserCollection.UpdateOne(
		context.TODO(),
		bson.M{"userid": storedUser.UserID},
		bson.M{"$set": bson.M{
			"refresh_token":  hashToken(refreshToken),
			"refresh_expiry": time.Now().Add(refreshTokenTTL),
			"last_login":     time.Now(),
		}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store refresh token")
		return
	}

	if err := rdx.RdxHset("tokki", storedUser.UserID, tokenString); err != nil {
		log.Printf("Redis token storage failed: %v", err)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"token":        tokenString,
		"refreshToken": refreshToken,
		"userid":       storedUser.UserID,
		"role":         storedUser.Role,
	})
}

func registerHandler(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if req.Username == "" || req.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Username and password are required")
		return
	}
	if req.Role != models.RoleClient && req.Role != models.RoleWorker {
		utils.RespondWithError(w, http.StatusBadRequest, "Role must be client or worker")
		return
	}

	log.Printf("Registering user: %s (%s)", req.Username, req.Role)

	var existingUser models.User
	err := db.UserCollection.FindOne(context.TODO(), bson.M{"username": req.Username}).Decode(&existingUser)
	if err == nil {
		utils.RespondWithError(w, http.StatusConflict, "User already exists")
		return
	} else if err != mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Failed to hash password for user %s: %v", req.Username, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	user := models.User{
		UserID:    "u" + utils.GenerateRandomString(10),
		Username:  req.Username,
		Email:     req.Email,
		Password:  string(hashedPassword),
		Phone:     req.Phone,
		Address:   req.Address,
		Role:      []string{req.Role},
		CreatedAt: time.Now(),
	}

	if err := rdx.RdxSet(fmt.Sprintf("users:%s", user.UserID), user.Username); err != nil {
		log.Printf("Failed to cache username: %v", err)
	}

	if _, err := db.UserCollection.InsertOne(context.TODO(), user); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	if req.Role == models.RoleWorker {
		if err := createWorkerProfile(context.TODO(), &user, &req); err != nil {
			log.Printf("Failed to create worker profile for %s: %v", user.UserID, err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create worker profile")
			return
		}
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"status": http.StatusCreated,
		"userid": user.UserID,
		"role":   user.Role,
	})
}

func createWorkerProfile(ctx context.Context, user *models.User, req *registerRequest) error {
	radius := req.ServiceRadiusKm
	if radius <= 0 {
		radius = models.DefaultServiceRadiusKm
	}
	if radius > matching.MaxServiceRadiusKm {
		radius = matching.MaxServiceRadiusKm
	}

	worker := models.Worker{
		WorkerID:        "w" + utils.GenerateRandomString(12),
		UserID:          user.UserID,
		Name:            user.Username,
		ServiceRadiusKm: radius,
		Skills:          utils.NormalizeSkills(req.Skills),
		CreatedAt:       time.Now(),
	}
	if geo.ValidCoordinates(req.Latitude, req.Longitude) {
		worker.HomeLocation = models.NewGeoPoint(req.Latitude, req.Longitude)
	}

	_, err := db.WorkerCollection.InsertOne(ctx, worker)
	return err
}

func logoutUserHandler(w http.ResponseWriter, r *http.Request) {
	tokenString := r.Header.Get("Authorization")
	claims, err := middleware.ValidateJWT(tokenString)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	if _, err := rdx.RdxHdel("tokki", claims.UserID); err != nil {
		log.Printf("Error removing token from Redis: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to log out")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "User logged out successfully"})
}

func refreshTokenHandler(w http.ResponseWriter, r *http.Request) {
	tokenString := r.Header.Get("Authorization")
	claims, err := middleware.ValidateJWT(tokenString)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	if time.Until(claims.ExpiresAt.Time) < 30*time.Minute {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(12 * time.Hour))
		newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		newTokenString, err := newToken.SignedString(globals.JwtSecret)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to refresh token")
			return
		}

		if err := rdx.RdxHset("tokki", claims.UserID, newTokenString); err != nil {
			log.Printf("Error updating token in Redis: %v", err)
		}

		utils.RespondWithJSON(w, http.StatusOK, utils.M{"token": newTokenString})
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Token still valid"})
}

func generateRefreshToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
