// Package addmember implements the Add Member use case.
//
// Members are appended in registration order. Registering is not recorded in the transaction log.
package addmember
