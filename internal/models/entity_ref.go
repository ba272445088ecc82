package models

// EntityType tags the concrete table an EntityRef points at.
type EntityType string

const (
	EntityArtwork EntityType = "artwork"
	EntityPost    EntityType = "post"
	EntityWall    EntityType = "wall"
	EntityComment EntityType = "comment"
	EntityUser    EntityType = "user"
)

// EntityRef is a tagged reference to a single row. It replaces reflection-based
// polymorphic associations: every consumer resolves the tag through the entity
// registry instead of dispatching on a runtime type.
type EntityRef struct {
	Type EntityType `json:"entity_type"`
	ID   uint       `json:"entity_id"`
}

// UserRef builds a ref to a user row, the most common case in counter updates.
func UserRef(id uint) EntityRef {
	return EntityRef{Type: EntityUser, ID: id}
}

// ParseEntityType validates an entity type tag coming from a request path.
func ParseEntityType(s string) (EntityType, bool) {
	switch EntityType(s) {
	case EntityArtwork, EntityPost, EntityWall, EntityComment, EntityUser:
		return EntityType(s), true
	}
	return "", false
}
