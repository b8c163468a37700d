package models

// ProjectOwner describes the account that owns a Project.
type ProjectOwner struct {
	Login     string `json:"login" yaml:"login"`
	AvatarURL string `json:"avatarUrl" yaml:"avatarUrl"`
	Type      string `json:"type" yaml:"type"`
}

// Project is a GitHub-style repository record.
type Project struct {
	ID            string       `json:"id" yaml:"id"`
	Name          string       `json:"name" yaml:"name"`
	FullName      string       `json:"fullName" yaml:"fullName"`
	Description   string       `json:"description" yaml:"description"`
	Language      string       `json:"language" yaml:"language"`
	LanguageColor string       `json:"languageColor" yaml:"languageColor"`
	Stars         int          `json:"stars" yaml:"stars"`
	Forks         int          `json:"forks" yaml:"forks"`
	Watchers      int          `json:"watchers" yaml:"watchers"`
	OpenIssues    int          `json:"openIssues" yaml:"openIssues"`
	Topics        []string     `json:"topics" yaml:"topics"`
	CreatedAt     string       `json:"createdAt" yaml:"createdAt"`
	UpdatedAt     string       `json:"updatedAt" yaml:"updatedAt"`
	Homepage      string       `json:"homepage,omitempty" yaml:"homepage"`
	Size          int          `json:"size" yaml:"size"`
	IsPrivate     bool         `json:"isPrivate" yaml:"isPrivate"`
	Owner         ProjectOwner `json:"owner" yaml:"owner"`
	Readme        string       `json:"readme,omitempty" yaml:"readme"`
	License       string       `json:"license,omitempty" yaml:"license"`
	DefaultBranch string       `json:"defaultBranch" yaml:"defaultBranch"`
}
