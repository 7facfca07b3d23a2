package rbac

import (
	"sync"

	"github.com/casbin/casbin/v2"
)

type EnforceRequest struct {
	Role     string
	Resource string
	Action   string
}

type Service interface {
	Enforce(req EnforceRequest) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.Mutex
}

func NewService(enforcer *casbin.Enforcer) (Service, error) {
	s := &service{enforcer: enforcer}
	if err := s.loadPolicy(); err != nil {
		return nil, err
	}
	return s, nil
}

// loadPolicy seeds the fixed role table. Roles are a closed set here, so the
// policy lives in code rather than a store.
func (s *service) loadPolicy() error {
	s.enforcer.ClearPolicy()

	for _, p := range defaultPolicies() {
		if _, err := s.enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return err
		}
	}

	return nil
}

func (s *service) Enforce(req EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.enforcer.Enforce(req.Role, req.Resource, req.Action)
}

func defaultPolicies() [][3]string {
	readOnly := []string{
		"employee", "truck", "delivery", "expense", "fine", "payment", "payroll", "report",
	}

	policies := make([][3]string, 0, 64)

	// admin: full access on every resource
	for _, res := range readOnly {
		for _, act := range []string{"create", "read", "update", "delete", "process"} {
			policies = append(policies, [3]string{"admin", res, act})
		}
	}

	// views: read everywhere
	for _, res := range readOnly {
		policies = append(policies, [3]string{"views", res, "read"})
	}

	// field staff: read their own deliveries and fines, settle fines
	for _, role := range []string{"driver", "turnboy"} {
		policies = append(policies,
			[3]string{role, "delivery", "read"},
			[3]string{role, "fine", "read"},
			[3]string{role, "payment", "read"},
			[3]string{role, "payment", "create"},
		)
	}

	return policies
}
