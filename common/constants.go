package common

var Version = "v0.1.0"

var SQLitePath = "console.db"
var SQLiteBusyTimeout = 3000

var UsingSQLite = false
var UsingPostgreSQL = false
var UsingMySQL = false

const (
	RoleGuestUser  = 0
	RoleCommonUser = 1
	RoleAdminUser  = 10
	RoleRootUser   = 100
)
