package model

type Post struct {
	Base
	Content   string     `gorm:"type:text;not null" json:"content"`
	Subtitle  *string    `gorm:"type:varchar(255)" json:"subtitle,omitempty"`
	SubImages StringList `gorm:"type:json" json:"sub_images,omitempty"`
}

func (Post) TableName() string {
	return PostKind.Collection
}

func (Post) Kind() Kind {
	return PostKind
}

func (p *Post) Body() string {
	return p.Content
}

func (p *Post) AssetURLs() []string {
	return assetURLs(p.ImageURL, p.SubImages)
}

func (p *Post) Fill(f Fields) {
	p.Title = f.Title
	p.Content = f.Body
	p.Subtitle = optional(f.Subtitle)
	p.ImageURL = optional(f.ImageURL)
	if len(f.SubImages) > 0 {
		p.SubImages = append(StringList(nil), f.SubImages...)
	}
	p.AuthorID = f.AuthorID
}
