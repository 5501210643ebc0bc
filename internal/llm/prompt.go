package llm

// ExtractionPrompt is the schema contract sent verbatim to the model. It is
// shared by text-mode and image-mode; only the trailer differs.
const ExtractionPrompt = `
Extract the following information from this invoice.
Return ONLY a valid JSON object with these fields (use null if not found):

{
    "invoice_number": "string - the invoice/bill number",
    "invoice_date": "string - date in YYYY-MM-DD format if possible",
    "due_date": "string - payment due date in YYYY-MM-DD format if possible, null if not mentioned",
    "vendor": {
        "name": "string - seller/vendor company name",
        "address": "string - vendor address",
        "gstin": "string - GST identification number if present"
    },
    "buyer": {
        "name": "string - buyer/customer name",
        "address": "string - buyer address",
        "gstin": "string - buyer GSTIN if present"
    },
    "line_items": [
        {
            "description": "string - item/service description",
            "hsn_code": "string - HSN/SAC code if present",
            "quantity": "number",
            "unit_price": "number",
            "amount": "number - line total"
        }
    ],
    "subtotal": "number - sum before taxes",
    "tax_details": {
        "cgst": "number - Central GST amount",
        "sgst": "number - State GST amount",
        "igst": "number - Integrated GST amount",
        "total_tax": "number - total tax amount"
    },
    "total_amount": "number - final payable amount",
    "currency": "string - INR, USD, etc.",
    "payment_terms": "string - any payment terms mentioned",
    "notes": "string - any additional notes or remarks"
}

Important:
- Extract numbers as actual numbers, not strings
- For Indian invoices, look for GSTIN (15-character alphanumeric)
- HSN codes are typically 4-8 digit numbers
- If a field is not present in the invoice, use null
`

// TextPrompt appends the extracted invoice text to the prompt.
func TextPrompt(invoiceText string) string {
	return ExtractionPrompt + "\n\nINVOICE TEXT:\n" + invoiceText
}

// ImagePrompt is the prompt used when the first page is attached as an image.
func ImagePrompt() string {
	return ExtractionPrompt + "\n\nSee the invoice image below:"
}
