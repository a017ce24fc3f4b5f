// Package git provides a strategy interface for creating remote repositories
// on different git hosting platforms, and local repository initialization.
//
// The RepoCreator interface abstracts repository creation. Implementations
// exist for GitHub, GitLab, and Bitbucket Cloud in sub-packages, each built
// from the URL and token stored for that platform. RepoCreatorFunc is a
// convenience adapter that lets plain functions satisfy the interface.
//
// Init prepares a local repository in a directory, using the git binary when
// it is installed and go-git otherwise.
package git
