package simulated

// Tips are the canned replies the simulated provider chooses from.
var Tips = []string{
	"リーチは待ちの枚数が多く、良形のときに積極的にかけましょう。愚形でも先制なら打点次第で十分に価値があります。",
	"**牌効率**の基本は、孤立した字牌や端牌から切っていくことです。数牌の3〜7は受け入れが広いので大切にしましょう。",
	"親のリーチには無理に押さず、現物や筋を頼りに安全牌を切っていくのが基本です。",
	"ドラは打点を大きく上げます。ドラ周りの牌（ドラ表示牌の隣）は早めに手放さないよう意識しましょう。",
	"序盤は手役より**スピード**を優先しましょう。タンヤオ・ピンフは鳴き・門前どちらでも狙いやすい役です。",
	"副露（鳴き）は手が早くなる反面、打点と守備力が下がります。役があるか必ず確認してから鳴きましょう。",
	"オーラスは点数状況の確認が最優先です。着順を上げるのに必要な打点を計算してから手を組みましょう。",
	"捨て牌は相手への情報です。他家の河をよく見て、染め手や対子手の気配を読み取りましょう。",
	"一向聴から聴牌までの受け入れ枚数を数える習慣をつけると、打牌の選択が安定します。",
	"ベタオリの判断は早いほど失点を防げます。手が遠いときは一発目から安全牌を残しておきましょう。",
}
