package model

import (
	"VideoTube.com/pkg/errno"
)

type LikeTargetKind string

const (
	TargetVideo   LikeTargetKind = "video"
	TargetComment LikeTargetKind = "comment"
	TargetTweet   LikeTargetKind = "tweet"
)

// LikeTarget 点赞目标: 视频, 评论, 推文三者之一
type LikeTarget struct {
	Kind LikeTargetKind
	ID   int64
}

func VideoTarget(id int64) LikeTarget   { return LikeTarget{Kind: TargetVideo, ID: id} }
func CommentTarget(id int64) LikeTarget { return LikeTarget{Kind: TargetComment, ID: id} }
func TweetTarget(id int64) LikeTarget   { return LikeTarget{Kind: TargetTweet, ID: id} }

func (t LikeTarget) Validate() error {
	switch t.Kind {
	case TargetVideo, TargetComment, TargetTweet:
	default:
		return errno.ParamErr.WithMessage("unknown like target: " + string(t.Kind))
	}
	if t.ID <= 0 {
		return errno.ParamErr.WithMessage("invalid " + string(t.Kind) + " id")
	}
	return nil
}
