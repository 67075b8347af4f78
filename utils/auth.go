package utils

import (
	"github.com/spf13/viper"
)

// Auth answers whether a user may run privileged commands.
type Auth struct {
	operators []string
}

// NewAuth reads the operator list from the configuration.
func NewAuth() (*Auth, error) {
	var operators []string
	if err := viper.UnmarshalKey("commands.auth.operators", &operators); err != nil {
		return nil, err
	}
	return &Auth{operators: operators}, nil
}

// IsOperator checks if a user may trigger manual poll cycles.
func (a *Auth) IsOperator(userID string) bool {
	for _, id := range a.operators {
		if userID == id {
			return true
		}
	}
	return false
}
