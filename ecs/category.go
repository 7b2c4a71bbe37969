package ecs

// Category is a collision bitmask. An entity's category says what it is,
// its mask says which categories it wants contact reports against.
type Category uint32

const (
	CategoryGamer  Category = 0b0001
	CategoryBullet Category = 0b0010
	CategoryTarget Category = 0b0100
	// CategoryGround sits outside every mask, so ground never produces
	// contact reports.
	CategoryGround Category = 0b1000
)

// CollisionFor returns the category and mask assigned to kind.
func CollisionFor(kind Kind) (category, mask Category) {
	switch kind {
	case KindAvatar:
		return CategoryGamer, CategoryTarget
	case KindProjectile:
		return CategoryBullet, CategoryTarget
	case KindTarget:
		return CategoryTarget, CategoryGamer | CategoryBullet | CategoryTarget
	case KindGround:
		return CategoryGround, 0
	default:
		return 0, 0
	}
}

// Reportable reports whether a contact between two bodies should be
// surfaced: each side's mask must include the other's category.
func Reportable(catA, maskA, catB, maskB Category) bool {
	return maskA&catB != 0 && maskB&catA != 0
}
