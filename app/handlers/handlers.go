// Package handlers contains the HTTP handlers of the dashboard
package handlers
