// Package guard decides whether an actor may mutate a resource.
//
// Callers load the resource first (a missing resource is a NotFound, never an
// authorization failure), then ask the guard, then mutate. The guard never
// touches the store.
package guard

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"vidtube/internal/common"
)

// Owned is implemented by every record that carries an owner reference.
// Implementations must tolerate a nil receiver and return the zero id.
type Owned interface {
	OwnerRef() primitive.ObjectID
}

// Check succeeds only when both ids are set and identify the same user.
func Check(owner, actor primitive.ObjectID) error {
	if owner.IsZero() || actor.IsZero() {
		return common.NewAuthorizationError()
	}
	if owner.Hex() != actor.Hex() {
		return common.NewAuthorizationError()
	}
	return nil
}

// CheckResource guards a loaded record. A nil record fails closed.
func CheckResource(res Owned, actor primitive.ObjectID) error {
	if res == nil {
		return common.NewAuthorizationError()
	}
	return Check(res.OwnerRef(), actor)
}
