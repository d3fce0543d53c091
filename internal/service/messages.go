package service

// Fixed replies. Every path through Assistant.Answer ends in one of these or in generated text.
const (
	msgEmptyQuestion   = "Vui lòng nhập câu hỏi hoặc tên thành phố bạn muốn biết thời tiết."
	msgNoCity          = "Xin lỗi, tôi không thể xác định tên thành phố từ câu hỏi của bạn. Vui lòng thử lại với tên thành phố cụ thể."
	msgNoPlace         = "Bạn muốn đến địa điểm nào? Vui lòng cho tôi biết tên địa điểm cụ thể."
	msgNeedCityForTour = "Bạn muốn tôi gợi ý địa điểm tham quan ở thành phố nào?"
	msgRecommendFailed = "Xin lỗi, hiện tôi chưa thể gợi ý địa điểm nào. Vui lòng thử lại sau."
	msgAdviceFailed    = "Xin lỗi, hiện tôi chưa thể đưa ra gợi ý trang phục. Vui lòng thử lại sau."
	msgClarifyFailed   = "Xin lỗi, tôi chưa hiểu rõ yêu cầu của bạn. Bạn muốn biết thời tiết, dự báo, gợi ý trang phục, địa điểm tham quan hay chỉ đường?"
	msgVague           = "Xin lỗi, tôi chưa hiểu câu hỏi của bạn. Bạn có thể hỏi cụ thể hơn, ví dụ: \"Thời tiết Hà Nội hôm nay thế nào?\" hoặc \"Chỉ đường đến chợ Bến Thành\"."
	msgShareLocation   = "Bật chia sẻ vị trí để tôi có thể chỉ đường từ vị trí hiện tại của bạn."
)
