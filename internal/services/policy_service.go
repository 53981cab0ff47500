package services

import (
	"fmt"

	"github.com/casbin/casbin/v2"

	"github.com/nicowave/aws-study-flashcards-app.com-sub000/domain"
)

// casbinEnforcerAdapter adapts the concrete Casbin enforcer to the
// domain.CasbinEnforcer port so the policy service can be tested without a
// policy table behind it
type casbinEnforcerAdapter struct {
	enforcer *casbin.Enforcer
}

func (a *casbinEnforcerAdapter) AddPolicy(params ...interface{}) (bool, error) {
	return a.enforcer.AddPolicy(params...)
}

func (a *casbinEnforcerAdapter) RemovePolicy(params ...interface{}) (bool, error) {
	return a.enforcer.RemovePolicy(params...)
}

func (a *casbinEnforcerAdapter) Enforce(rvals ...interface{}) (bool, error) {
	return a.enforcer.Enforce(rvals...)
}

func (a *casbinEnforcerAdapter) GetPolicy() ([][]string, error) {
	return a.enforcer.GetPolicy(), nil
}

func (a *casbinEnforcerAdapter) SavePolicy() error {
	return a.enforcer.SavePolicy()
}

// PolicyServiceImpl implements domain.PolicyService. Policies are the
// role/route/verb triples the admin surface manages; every mutation is
// persisted to the policy table immediately so all instances converge.
type PolicyServiceImpl struct {
	enforcer domain.CasbinEnforcer
}

// NewPolicyService creates a policy service over the live enforcer
func NewPolicyService(enforcer *casbin.Enforcer) domain.PolicyService {
	return &PolicyServiceImpl{enforcer: &casbinEnforcerAdapter{enforcer: enforcer}}
}

// NewPolicyServiceWithEnforcer creates a policy service over any enforcer
// implementation (used by tests)
func NewPolicyServiceWithEnforcer(enforcer domain.CasbinEnforcer) domain.PolicyService {
	return &PolicyServiceImpl{enforcer: enforcer}
}

// AddPolicy implements domain.PolicyService
func (p *PolicyServiceImpl) AddPolicy(role, resource, action string) error {
	if _, err := p.enforcer.AddPolicy(role, resource, action); err != nil {
		return fmt.Errorf("failed to add policy: %w", err)
	}
	if err := p.enforcer.SavePolicy(); err != nil {
		return fmt.Errorf("failed to persist policy: %w", err)
	}
	return nil
}

// RemovePolicy implements domain.PolicyService
func (p *PolicyServiceImpl) RemovePolicy(role, resource, action string) error {
	if _, err := p.enforcer.RemovePolicy(role, resource, action); err != nil {
		return fmt.Errorf("failed to remove policy: %w", err)
	}
	if err := p.enforcer.SavePolicy(); err != nil {
		return fmt.Errorf("failed to persist policy: %w", err)
	}
	return nil
}

// CheckPermission implements domain.PolicyService
func (p *PolicyServiceImpl) CheckPermission(role, resource, action string) (bool, error) {
	return p.enforcer.Enforce(role, resource, action)
}

// GetPolicies implements domain.PolicyService
func (p *PolicyServiceImpl) GetPolicies() ([][]string, error) {
	policies, err := p.enforcer.GetPolicy()
	if err != nil {
		return nil, fmt.Errorf("failed to load policies: %w", err)
	}
	return policies, nil
}
