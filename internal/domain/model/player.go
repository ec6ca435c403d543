package model

// Role partitions the population for cohort membership, sample thresholds
// and weight vectors. Two-way players are ranked under their primary role.
type Role string

const (
	RoleHitter  Role = "hitter"
	RolePitcher Role = "pitcher"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleHitter || r == RolePitcher
}

// PlayerMeta identifies a ranking candidate. Level and Season pin the
// player's cohort; Age is the player's age in years at the ranking date.
type PlayerMeta struct {
	PlayerID string
	Name     string
	Role     Role
	Level    string
	Season   int
	Age      float64
}
