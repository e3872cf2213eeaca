package models

import "sort"

// Engagement scores a post as likes + 2*reposts + replies.
// Negative counts are treated as zero.
func Engagement(likes, reposts, replies int) int {
	return clampZero(likes) + 2*clampZero(reposts) + clampZero(replies)
}

func clampZero(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// SortByEngagement orders posts by engagement, highest first.
// Posts with equal scores keep their relative order.
func SortByEngagement(posts []ScrapedPost) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Engagement > posts[j].Engagement
	})
}
