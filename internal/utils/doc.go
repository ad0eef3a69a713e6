// Package utils provides shared helpers for locating the Sprout project root.
//
//   - FindProjectSproutRoot: walks up directories to find .sprout
//   - ResolveProjectRoot: project root, or working directory when uninitialized
//   - GetProjectName: base name of the project root
package utils
