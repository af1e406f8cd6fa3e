package jwt

import (
	"strconv"
	"time"

	"VideoTube.com/config"
	"VideoTube.com/pkg/constants"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/utils"
	gjwt "github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	hzjwt "github.com/hertz-contrib/jwt"
	"github.com/pkg/errors"
)

const (
	typAccess  = "access"
	typRefresh = "refresh"
)

type TokenPair struct {
	AccessToken   string    `json:"accessToken"`
	AccessExpire  time.Time `json:"accessExpire"`
	RefreshToken  string    `json:"refreshToken"`
	RefreshExpire time.Time `json:"refreshExpire"`
}

// Claims 解析后的token
type Claims struct {
	UserID int64
	Expire time.Time
}

// Issuer access token与refresh token使用不同的密钥和有效期
type Issuer struct {
	access  *hzjwt.HertzJWTMiddleware
	refresh *hzjwt.HertzJWTMiddleware
}

func newMiddleware(realm, typ, secret string, timeout time.Duration) (*hzjwt.HertzJWTMiddleware, error) {
	if secret == "" {
		return nil, errors.Errorf("%s token secret is empty", typ)
	}
	return hzjwt.New(&hzjwt.HertzJWTMiddleware{
		Realm:         realm,
		Key:           []byte(secret),
		Timeout:       timeout,
		MaxRefresh:    timeout,
		IdentityKey:   constants.IdentityKey,
		TokenLookup:   "header: Authorization, cookie: " + cookieName(typ),
		TokenHeadName: "Bearer",
		TimeFunc:      time.Now,
		PayloadFunc: func(data interface{}) hzjwt.MapClaims {
			if v, ok := data.(int64); ok {
				return hzjwt.MapClaims{
					constants.IdentityKey: strconv.FormatInt(v, 10),
					"typ":                 typ,
					"jti":                 uuid.NewString(),
				}
			}
			return hzjwt.MapClaims{}
		},
	})
}

func cookieName(typ string) string {
	if typ == typRefresh {
		return constants.RefreshTokenCookie
	}
	return constants.AccessTokenCookie
}

func NewIssuer(c *config.Config) (*Issuer, error) {
	access, err := newMiddleware("videotube access", typAccess, c.Jwt.AccessSecret, c.Jwt.AccessExpiry)
	if err != nil {
		return nil, errors.Wrap(err, "init access token middleware failed")
	}
	refresh, err := newMiddleware("videotube refresh", typRefresh, c.Jwt.RefreshSecret, c.Jwt.RefreshExpiry)
	if err != nil {
		return nil, errors.Wrap(err, "init refresh token middleware failed")
	}
	return &Issuer{access: access, refresh: refresh}, nil
}

func (i *Issuer) Issue(userID int64) (*TokenPair, error) {
	at, atExp, err := i.access.TokenGenerator(userID)
	if err != nil {
		return nil, errors.Wrap(err, "generate access token failed")
	}
	rt, rtExp, err := i.refresh.TokenGenerator(userID)
	if err != nil {
		return nil, errors.Wrap(err, "generate refresh token failed")
	}
	return &TokenPair{AccessToken: at, AccessExpire: atExp, RefreshToken: rt, RefreshExpire: rtExp}, nil
}

func (i *Issuer) ParseAccess(token string) (*Claims, error) {
	return parse(i.access, typAccess, token)
}

func (i *Issuer) ParseRefresh(token string) (*Claims, error) {
	return parse(i.refresh, typRefresh, token)
}

func parse(mw *hzjwt.HertzJWTMiddleware, typ, token string) (*Claims, error) {
	if token == "" {
		return nil, errno.AuthenticationErr.WithMessage("Unauthorized request")
	}
	t, err := mw.ParseTokenString(token)
	if err != nil || !t.Valid {
		return nil, errno.TokenInvalidErr
	}
	claims, ok := t.Claims.(gjwt.MapClaims)
	if !ok || claims["typ"] != typ {
		return nil, errno.TokenInvalidErr
	}
	userID, err := utils.Transfer(claims[constants.IdentityKey])
	if err != nil || userID <= 0 {
		return nil, errno.TokenInvalidErr
	}
	exp, _ := claims["exp"].(float64)
	return &Claims{UserID: userID, Expire: time.Unix(int64(exp), 0)}, nil
}
