package catalogsuc

import (
	"time"

	"github.com/momeni/txscope/pkg/core/model"
	"github.com/momeni/txscope/pkg/core/orm"
)

func str(m orm.Model, key string) string {
	s, _ := m.Get(key).(string)
	return s
}

func toAuthor(m orm.Model) *model.Author {
	a := &model.Author{
		ID:   str(m, "id"),
		Name: str(m, "name"),
	}
	a.CreatedAt, _ = m.Get("created_at").(time.Time)
	return a
}

func toBook(m orm.Model) model.Book {
	return model.Book{
		ID:       str(m, "id"),
		AuthorID: str(m, "author_id"),
		Title:    str(m, "title"),
	}
}

func toComment(m orm.Model) (model.Comment, error) {
	k, err := model.ParseCommentable(str(m, "commentable_type"))
	if err != nil {
		return model.Comment{}, err
	}
	return model.Comment{
		ID:       str(m, "id"),
		Kind:     k,
		TargetID: str(m, "commentable_id"),
		Body:     str(m, "body"),
	}, nil
}
