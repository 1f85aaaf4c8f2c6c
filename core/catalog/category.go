package catalog

import "github.com/pkg/errors"

// Category is one of the ten task categories.
type Category string

const (
	CategoryPermission Category = "permission" // 권한 부여
	CategoryEnrollment Category = "enrollment" // 학적 관리
	CategoryCurriculum Category = "curriculum" // 교육과정
	CategoryAttendance Category = "attendance" // 출결 관리
	CategoryGrades     Category = "grades"     // 성적 처리
	CategoryRecords    Category = "records"    // 학교생활기록부
	CategoryYearEnd    Category = "yearend"    // 학년말 업무
	CategoryTransfer   Category = "transfer"   // 학년도 이월
	CategorySystem     Category = "system"     // 시스템 관리
	CategoryCreative   Category = "creative"   // 창의적체험활동
)

// CategoryAll is accepted by filters to mean "no category filter".
const CategoryAll Category = "all"

var (
	ErrUnknownCategory = errors.New("unknown category")

	Categories = []Category{
		CategoryPermission,
		CategoryEnrollment,
		CategoryCurriculum,
		CategoryAttendance,
		CategoryGrades,
		CategoryRecords,
		CategoryYearEnd,
		CategoryTransfer,
		CategorySystem,
		CategoryCreative,
	}

	categoryLabels = map[Category]string{
		CategoryPermission: "권한 부여",
		CategoryEnrollment: "학적 관리",
		CategoryCurriculum: "교육과정",
		CategoryAttendance: "출결 관리",
		CategoryGrades:     "성적 처리",
		CategoryRecords:    "학교생활기록부",
		CategoryYearEnd:    "학년말 업무",
		CategoryTransfer:   "학년도 이월",
		CategorySystem:     "시스템 관리",
		CategoryCreative:   "창의적체험활동",
	}
)

func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

func (c Category) Label() string {
	if c == CategoryAll {
		return "전체"
	}
	return categoryLabels[c]
}

func (c Category) String() string { return string(c) }

// ParseCategory returns the Category named `s`. An empty string or "all" yields CategoryAll.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if s == "" || c == CategoryAll {
		return CategoryAll, nil
	}
	if !c.Valid() {
		return "", errors.Wrapf(ErrUnknownCategory, "%q", s)
	}
	return c, nil
}

// Priority ranks schedule tasks.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}
