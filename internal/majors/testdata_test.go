package majors

func completeAnswers() AnswerSet {
	return AnswerSet{
		"interest":   {"التكنولوجيا", "الفيزياء"},
		"strength":   {"حل المشكلات"},
		"study":      {"بمشاريع تطبيقية"},
		"motivation": {"الابتكار والتجديد"},
		"vision":     {"في مختبر"},
		"skills":     {"مهارات التقنية", "مهارات التحليل"},
		"values":     {"التطور المهني"},
		"challenges": {"حل المشكلات المعقدة"},
	}
}

const sampleCompletion = "1. Computer Science: Great fit. المسارات المهنية: Engineer.\n2. Physics: Also fits. المسارات المهنية: Researcher."
