package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Claims are the identity fields carried by an access token.
type Claims struct {
	UserID     string
	Username   string
	Department string
}

type Service interface {
	GenerateAccessToken(userID, username, department string) (token string, expiresAt int64, err error)
	ValidateAccessToken(tokenString string) (Claims, error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	secretKey                 string
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		secretKey:                 secretKey,
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) GenerateAccessToken(userID, username, department string) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id":    userID,
		"username":   username,
		"department": department,
		"type":       "access",
		"exp":        expiresAt,
	})
	return tokenString, expiresAt, err
}

// ValidateAccessToken verifies signature, expiry and token type.
func (j *JWTService) ValidateAccessToken(tokenString string) (Claims, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return Claims{}, err
	}
	return ClaimsFromMap(token.PrivateClaims())
}

// ClaimsFromMap extracts access token claims, rejecting other token types.
func ClaimsFromMap(claims map[string]interface{}) (Claims, error) {
	if tokenType, ok := claims["type"].(string); !ok || tokenType != "access" {
		return Claims{}, jwt.ErrInvalidJWT()
	}

	username, _ := claims["username"].(string)
	department, _ := claims["department"].(string)
	if username == "" || department == "" {
		return Claims{}, jwt.ErrInvalidJWT()
	}

	userID, _ := claims["user_id"].(string)
	return Claims{UserID: userID, Username: username, Department: department}, nil
}
