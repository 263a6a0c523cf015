package telegram

const msgWelcome = `Hi! 👋
I'm your shop management bot.

Talk to me in plain language and I will:
✅ add new products
✅ manage categories
✅ add brands
✅ list and search products
📸 upload product and category images

📸 How to upload images:

🔹 Product (several images):
/setproduct
[image 1, 2, 3...]
"add product Galaxy A54 priced 15000000"

🔹 Category (one image):
/setcategory
[one image]
"add a category called mobile"`

const msgHelp = `🤖 How to use this bot

📝 Commands:
/start - start the bot
/help - this help
/products - list products
/categories - list categories
/brands - list brands
/clearimages - drop uploaded images
/setproduct - product mode (several images)
/setcategory - category mode (one image)

💬 Usage:
Just write what you want in plain language!

✨ Examples:

📦 Product with images:
/setproduct
[image 1, image 2, image 3]
"add product Galaxy S23 priced 15000000"

📂 Category with an image:
/setcategory
[one image]
"add a category called accessories"

📦 Without images:
"add an Asus laptop priced 20000000"

🔍 Search and manage:
• "list products"
• "set the iPhone 13 stock to 10"

⚡️ Notes:
- default mode: product (several images)
- category: one image only
- sent an image by mistake? /clearimages`

const (
	msgUnauthorized = "🚫 you don't have access to this bot."
	msgProcessing   = "⏳ processing your request..."
	msgUploading    = "📸 uploading image..."
	msgNoImages     = "no images uploaded!"
)
