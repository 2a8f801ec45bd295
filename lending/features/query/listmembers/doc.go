// Package listmembers implements the Get All Members query, in registration order.
package listmembers
