package services

import "github.com/storefront-api/models"

// Actor is the authenticated identity performing an operation
type Actor struct {
	UserID uint
	Role   models.Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// CanModify is the owner-or-admin rule shared by stores, products and comments
func CanModify(actor Actor, ownerID uint) bool {
	return actor.IsAdmin() || actor.UserID == ownerID
}

func authorize(actor Actor, ownerID uint, message string) error {
	if !CanModify(actor, ownerID) {
		return forbidden(message)
	}
	return nil
}
