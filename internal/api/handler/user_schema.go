package handler

type updateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=ADMIN INSTRUCTOR COMPANY_REP LEARNER"`
}

type availabilityResponse struct {
	Available bool `json:"available"`
}
