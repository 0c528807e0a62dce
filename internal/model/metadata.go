package model

type MetadataChunkItem struct {
	Description   string `json:"description"`
	AnimationURL  string `json:"animation_url"`
	AnimationHash string `json:"animation_hash"`
	ImageURL      string `json:"image_url"`
	ImageHash     string `json:"image_hash"`
}

type LoadMetadataChunkRequest struct {
	DropID     int64               `json:"drop_id"`
	StartIndex int64               `json:"start_index"`
	Count      int64               `json:"count"`
	Items      []MetadataChunkItem `json:"items"`
}

type LoadMetadataChunkResponse struct{}

type MetadataLoadedRequest struct {
	DropID int64 `json:"drop_id"`
}

type MetadataLoadedResponse struct {
	Complete bool `json:"complete"`
}

type TokenURIRequest struct {
	DropID  int64 `json:"drop_id"`
	TokenID int64 `json:"token_id"`
}

type TokenURIResponse struct {
	URI string `json:"uri"`
}
