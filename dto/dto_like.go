package dto

type LikeResponse struct {
	Message string `json:"message" example:"post liked successfully"`
	PostID  string `json:"postId"`
}

type LikedPostsResponse struct {
	LikedPostIDs []string `json:"likedPostIds"`
}
