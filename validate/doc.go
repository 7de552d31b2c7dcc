// Package validate performs the optional post-conversion artifact check.
//
// Each produced binary module is loaded read-only into a wazero runtime and
// compiled; a decode failure marks the job failed. The check is off by
// default and never modifies or executes the artifact.
package validate
