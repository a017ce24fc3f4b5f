// Package github implements a git.RepoCreator that creates repositories on
// GitHub (cloud or enterprise). Configure with the URL and token stored for
// the github platform; an empty URL targets github.com.
package github
