package wiki

// EditResult is the outcome of a page edit.
type EditResult struct {
	Title      string
	PageID     int
	RevisionID int
	NewPage    bool
	NoChange   bool
}

// MoveResult is the outcome of a page move.
type MoveResult struct {
	From            string
	To              string
	Reason          string
	RedirectCreated bool
}

// DeleteResult is the outcome of a page deletion.
type DeleteResult struct {
	Title  string
	Reason string
	LogID  int
}

// UploadResult is the outcome of a file upload.
type UploadResult struct {
	Filename string
	// Result is the API result string: Success, Warning or Continue.
	Result   string
	Warnings []string
	URL      string
}

// ModuleOutput is what a Scribunto console evaluation produced.
type ModuleOutput struct {
	Print  string
	Return string
}

type editResponse struct {
	Edit struct {
		Result   string `json:"result"`
		Title    string `json:"title"`
		PageID   int    `json:"pageid"`
		NewRevID int    `json:"newrevid"`
		New      *bool  `json:"new"`
		NoChange *bool  `json:"nochange"`
	} `json:"edit"`
}

type moveResponse struct {
	Move struct {
		From            string `json:"from"`
		To              string `json:"to"`
		Reason          string `json:"reason"`
		RedirectCreated *bool  `json:"redirectcreated"`
	} `json:"move"`
}

type deleteResponse struct {
	Delete struct {
		Title  string `json:"title"`
		Reason string `json:"reason"`
		LogID  int    `json:"logid"`
	} `json:"delete"`
}

type uploadResponse struct {
	Upload struct {
		Result    string         `json:"result"`
		Filename  string         `json:"filename"`
		Warnings  map[string]any `json:"warnings"`
		ImageInfo struct {
			URL string `json:"url"`
		} `json:"imageinfo"`
	} `json:"upload"`
}

type queryPagesResponse struct {
	Query struct {
		Pages []struct {
			Title     string `json:"title"`
			Missing   bool   `json:"missing"`
			Invalid   bool   `json:"invalid"`
			Revisions []struct {
				Slots struct {
					Main struct {
						Content string `json:"content"`
					} `json:"main"`
				} `json:"slots"`
			} `json:"revisions"`
		} `json:"pages"`
	} `json:"query"`
}

type tokensResponse struct {
	Query struct {
		Tokens struct {
			LoginToken string `json:"logintoken"`
			CSRFToken  string `json:"csrftoken"`
		} `json:"tokens"`
	} `json:"query"`
}

type loginResponse struct {
	Login struct {
		Result string `json:"result"`
		Reason string `json:"reason"`
	} `json:"login"`
}

type consoleResponse struct {
	Type    string `json:"type"`
	Print   string `json:"print"`
	Return  string `json:"return"`
	Message string `json:"message"`
}
