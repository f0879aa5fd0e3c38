package models

// ModuleDetails is a module with its content lists. The lists are never nil.
type ModuleDetails struct {
	Module
	Lessons     []Lesson     `json:"lessons"`
	Quizzes     []Quiz       `json:"quizzes"`
	Assignments []Assignment `json:"assignments"`
}

// CourseDetails is the nested course view returned by the aggregation
type CourseDetails struct {
	Course     Course          `json:"course"`
	Modules    []ModuleDetails `json:"modules"`
	IsEnrolled bool            `json:"isEnrolled"`
}
