package internaldefs

import (
	goIdentity "github.com/MrEthical07/goIdentity"
)

// CounterDef binds a goIdentity metric to its stable export name and help
// text. Both exporter implementations read from the same table so metric
// names never diverge between backends.
type CounterDef struct {
	ID   goIdentity.MetricID
	Name string
	Help string
}

// CounterDefs lists every exported counter in declaration order.
var CounterDefs = []CounterDef{
	{ID: goIdentity.MetricRegisterSuccess, Name: "goidentity_register_success_total", Help: "Completed account registrations."},
	{ID: goIdentity.MetricRegisterDuplicate, Name: "goidentity_register_duplicate_total", Help: "Registrations rejected for an already-taken email."},
	{ID: goIdentity.MetricRegisterInvalid, Name: "goidentity_register_invalid_total", Help: "Registrations rejected by input validation."},
	{ID: goIdentity.MetricLoginSuccess, Name: "goidentity_login_success_total", Help: "Successful login attempts."},
	{ID: goIdentity.MetricLoginFailure, Name: "goidentity_login_failure_total", Help: "Failed login attempts."},
	{ID: goIdentity.MetricTokenIssued, Name: "goidentity_token_issued_total", Help: "Minted session tokens."},
	{ID: goIdentity.MetricTokenRejected, Name: "goidentity_token_rejected_total", Help: "Tokens that failed verification."},
	{ID: goIdentity.MetricAccessAllowed, Name: "goidentity_access_allowed_total", Help: "Authorization decisions that allowed the caller."},
	{ID: goIdentity.MetricAccessDenied, Name: "goidentity_access_denied_total", Help: "Authorization decisions that denied the caller."},
	{ID: goIdentity.MetricRoleChange, Name: "goidentity_role_change_total", Help: "Persisted role updates."},
	{ID: goIdentity.MetricRoleChangeRejected, Name: "goidentity_role_change_rejected_total", Help: "Role updates rejected by validation or a missing target."},
}
