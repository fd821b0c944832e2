package dto

import identitydomain "recruitbridge-backend/internal/identity/domain"

type CheckUsernameRequest struct {
	Username string `json:"username" binding:"required"`
}

type CheckUsernameResponse struct {
	Available bool   `json:"available"`
	Username  string `json:"username"`
	Reason    string `json:"reason,omitempty"`
}

type CreateIdentityRequest struct {
	Username    string `json:"username" binding:"required"`
	DisplayName string `json:"displayName"`
}

type IdentityResponse struct {
	OK       bool                     `json:"ok"`
	Identity *identitydomain.Identity `json:"identity,omitempty"`
	Mailbox  *identitydomain.Mailbox  `json:"mailbox,omitempty"`
	Detail   string                   `json:"detail,omitempty"`
}

type CleanupResponse struct {
	OK      bool   `json:"ok"`
	Kept    string `json:"kept,omitempty"`
	Deleted int    `json:"deleted"`
}
