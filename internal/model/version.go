package model

// Version is the released version of skupick, checked by --update.
const Version = "v0.3.1"

// Repository coordinates used by the update check.
const (
	RepoOwner = "skupick"
	RepoName  = "skupick"
)
