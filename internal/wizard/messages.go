package wizard

import "fmt"

const (
	msgMenu             = "Choose an action:\n/create - Create a new USDC Transfer App\n"
	msgAskTitle         = "Let's create a new USDC Transfer App. First, what's the title?\n\nYou can use /cancel at any time to abort the process."
	msgAskIcon          = "Great! Now, please upload an icon image for your app. If you don't want to upload an image, just type 'skip' to use the default icon.\n\nUse /cancel to abort if needed."
	msgDefaultIcon      = "Using default icon. What's the description?\n\nUse /cancel to abort if needed."
	msgIconUploaded     = "Icon uploaded successfully. What's the description?\n\nUse /cancel to abort if needed."
	msgIconRetry        = "Please upload an image or type 'skip' to use the default icon.\n\nUse /cancel to abort if needed."
	msgIconFailed       = "There was an error uploading your icon. Please try again or type 'skip' to use the default icon.\n\nUse /cancel to abort if needed."
	msgAskLabel         = "Good! What's the label?\n\n/cancel is available if you want to stop."
	msgAskAmounts       = "Now, enter the predefined amounts separated by commas (e.g., 1,5,10):\n\nRemember /cancel is always an option."
	msgAmountsInvalid   = "Please enter positive numbers separated by commas (e.g., 1,5,10).\n\nRemember /cancel is always an option."
	msgAskRecipient     = "Finally, what's the recipient's Solana address?\n\nLast chance to /cancel if needed."
	msgCancelled        = "App creation cancelled."
	msgNothingToCancel  = "There's no ongoing process to cancel."
	msgStartOver        = "Something went wrong. Let's start over."
	msgCreatedTemplate  = "App created successfully!\nID: %s\n\nEndpoint: %s\n\nThese endpoints conform to the Solana Action specification.\nYou can create the Blink to share directly on %s"
	msgShareTemplate    = "Click here to create your Solana Action on Dialect: %s/?action=solana-action:%s"
	msgCreateFailedTmpl = "Error creating app: %s"
)

func createdMessage(id, endpoint, shareBase string) string {
	return fmt.Sprintf(msgCreatedTemplate, id, endpoint, shareBase)
}

func shareMessage(shareBase, endpoint string) string {
	return fmt.Sprintf(msgShareTemplate, shareBase, endpoint)
}

func createFailedMessage(err error) string {
	if err == nil {
		return "An unknown error occurred while creating the app."
	}
	return fmt.Sprintf(msgCreateFailedTmpl, err.Error())
}
