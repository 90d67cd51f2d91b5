package studio

// トランスクリプトに表示する文言です。
const (
	msgGenerating        = "🎨 Generating: \"%s\" with style: %s, please wait..."
	msgImageAdded        = "🖼️ Image for \"%s\" (%s) generated and added to gallery."
	msgNoImages          = "⚠️ Sorry, I couldn't generate an image for \"%s\". The API returned no images."
	msgImageError        = "⚠️ An error occurred while generating an image for \"%s\". Please check the console."
	msgImagePrompt       = "Image Prompt: %s"
	msgImagePromptStyle  = "Image Prompt (Style: %s): %s"
	msgImagePromptSelect = "Image Prompt (from selection - %s): %s"
	msgEmptyTrigger      = "ℹ️ Please enter a description after \"%s\" to generate an image."
	msgEmptyStylePrompt  = "ℹ️ Please enter a description in the prompt area above, then click a style chip."
	msgEmptySelection    = "ℹ️ Please select some text to generate an image from it."
	msgStagedIgnored     = "ℹ️ Staged image for chat will be ignored for this style generation."
	msgStagedIgnoredSel  = "ℹ️ Staged image for chat will be ignored for this style generation from selection."
	msgUnknownStyle      = "⚠️ Unknown style \"%s\"."

	msgThinking          = "Thinking..."
	msgThinkingWithImage = "Thinking with image..."
	msgImageDecodeFailed = "⚠️ Sorry, there was an issue processing the provided image."
	msgMultimodalError   = "⚠️ An error occurred while processing your request with the image. Please check the console."
	msgNeedStagedImage   = "ℹ️ Please stage an image first to use this action."
	msgUnknownAction     = "⚠️ Unknown action \"%s\"."

	msgDropNotImage       = "⚠️ Please drop an image file."
	msgDropFailed         = "⚠️ Could not process dropped image file (extraction failed)."
	msgGalleryDropFailed  = "⚠️ Could not process image data from gallery (extraction failed)."
	msgGalleryDropMissing = "⚠️ Could not read dropped image data from gallery."

	msgCardArchiveError = "⚠️ Sorry, there was an error creating the card archive."
	msgCardNotFound     = "⚠️ Gallery card %d was not found."
	msgGalleryEmpty     = "ℹ️ Gallery is empty. Nothing to download."
	msgPackaging        = "📦 Packaging all gallery cards for download, please wait..."
	msgPackaged         = "✅ All gallery cards packaged. Download starting."
	msgMasterArchiveErr = "⚠️ Sorry, there was an error creating the master gallery archive."
	msgExportInProgress = "ℹ️ Gallery cards are already being packaged. Please wait."

	msgNotConfiguredSubmit = "⚠️ API Key not configured. Cannot send message."
	msgNotConfiguredImage  = "⚠️ Image generation is disabled because the API key is not configured."
	msgNotConfiguredSelect = "⚠️ Image generation from selection is disabled because the API key is not configured."
	msgNotConfiguredAction = "⚠️ API Key not configured. Cannot perform this action."
	msgNotConfiguredDrop   = "⚠️ API Key not configured. Cannot use dropped image."
	msgNotConfiguredExport = "⚠️ API key not configured. Cannot download gallery cards."
)
