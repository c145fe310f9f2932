package port

import "syllabus/internal/domain"

type UnitParser interface {
	Parse(path string, content string) (domain.Unit, error)
}
