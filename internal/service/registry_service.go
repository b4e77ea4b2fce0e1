package service

import (
	"github.com/malshehri/groupbuy-checkout/internal/model"
)

// RegistryService enumerates which payment methods a platform can use.
// Pure function of the platform context: the common set plus exactly one
// OS-exclusive wallet.
type RegistryService struct{}

func NewRegistryService() *RegistryService {
	return &RegistryService{}
}

func (s *RegistryService) AvailableMethods(p model.Platform) []model.Method {
	var methods []model.Method
	for _, m := range model.AllMethods() {
		if m.AvailableOn(p) {
			methods = append(methods, m)
		}
	}
	return methods
}

func (s *RegistryService) IsAvailable(m model.Method, p model.Platform) bool {
	return m.AvailableOn(p)
}
