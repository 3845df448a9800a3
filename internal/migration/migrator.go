package migration

// Migrator prepares the results database
type Migrator interface {
	Run(fresh bool) error
}
