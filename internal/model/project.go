package model

type Project struct {
	Base
	Description string  `gorm:"type:text;not null" json:"description"`
	ProjectURL  *string `gorm:"type:varchar(1024)" json:"project_url,omitempty"`
	GithubURL   *string `gorm:"type:varchar(1024)" json:"github_url,omitempty"`
}

func (Project) TableName() string {
	return ProjectKind.Collection
}

func (Project) Kind() Kind {
	return ProjectKind
}

func (p *Project) Body() string {
	return p.Description
}

func (p *Project) AssetURLs() []string {
	return assetURLs(p.ImageURL, nil)
}

func (p *Project) Fill(f Fields) {
	p.Title = f.Title
	p.Description = f.Body
	p.ProjectURL = optional(f.ProjectURL)
	p.GithubURL = optional(f.GithubURL)
	p.ImageURL = optional(f.ImageURL)
	p.AuthorID = f.AuthorID
}
