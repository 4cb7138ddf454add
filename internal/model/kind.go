package model

// Kind 描述一种内容类型的能力差异，帖子与项目共用同一套工作流
type Kind struct {
	Collection string
	Noun       string
	Label      string
	BodyLabel  string
	Subtitle   bool
	SubImages  bool
	Links      bool
	RichText   bool
}

var (
	PostKind = Kind{
		Collection: "posts",
		Noun:       "post",
		Label:      "Blog Posts",
		BodyLabel:  "content",
		Subtitle:   true,
		SubImages:  true,
		RichText:   true,
	}
	ProjectKind = Kind{
		Collection: "projects",
		Noun:       "project",
		Label:      "Projects",
		BodyLabel:  "description",
		Links:      true,
	}
)

// KindByCollection 根据集合名查找内容类型
func KindByCollection(name string) (Kind, bool) {
	switch name {
	case PostKind.Collection:
		return PostKind, true
	case ProjectKind.Collection:
		return ProjectKind, true
	}
	return Kind{}, false
}
