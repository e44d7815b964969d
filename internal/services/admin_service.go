package services

import (
	"crypto/subtle"

	"go.uber.org/zap"
)

// AdminFlag is the per-session admin marker. Once granted it lasts for the session.
type AdminFlag interface {
	Gate
	Grant()
}

// AdminService checks the single shared admin secret.
type AdminService struct {
	password string
	log      *zap.Logger
}

func NewAdminService(password string, log *zap.Logger) *AdminService {
	return &AdminService{password: password, log: log}
}

// Authenticate grants the flag when password matches the configured secret.
func (s *AdminService) Authenticate(flag AdminFlag, password string) bool {
	if s.password == "" || subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) != 1 {
		s.log.Warn("admin login rejected")
		return false
	}
	flag.Grant()
	s.log.Info("admin login accepted")
	return true
}

func (s *AdminService) Authorized(gate Gate) bool {
	return gate != nil && gate.Authorized()
}
